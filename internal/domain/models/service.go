// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a marketing service offering (SEO, web development, etc.).
// Body is sanitized HTML; Slug is derived from Name and unique.
type Service struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Slug     string             `bson:"slug" json:"slug"`
	Summary  string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Body     string             `bson:"body,omitempty" json:"body,omitempty"`
	IconURL  string             `bson:"icon_url,omitempty" json:"icon_url,omitempty"`
	ImageURL string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Status   string             `bson:"status" json:"status"` // active | inactive
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
