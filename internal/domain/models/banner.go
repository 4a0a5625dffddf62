// internal/domain/models/banner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a homepage/landing carousel slide. Order drives manual sorting
// in list views and is mutated through the batch reorder endpoint.
type Banner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL string             `bson:"image_url" json:"image_url"`
	LinkURL  string             `bson:"link_url,omitempty" json:"link_url,omitempty"`
	Platform string             `bson:"platform" json:"platform"` // web | mobile | both
	Status   string             `bson:"status" json:"status"`     // active | inactive
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Banner platforms.
const (
	PlatformWeb    = "web"
	PlatformMobile = "mobile"
	PlatformBoth   = "both"
)

// IsValidPlatform reports whether p is a recognized banner platform.
func IsValidPlatform(p string) bool {
	return p == PlatformWeb || p == PlatformMobile || p == PlatformBoth
}
