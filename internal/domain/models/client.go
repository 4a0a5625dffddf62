// internal/domain/models/client.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a customer logo/reference shown on the public site.
type Client struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"`
	LogoURL    string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	WebsiteURL string             `bson:"website_url,omitempty" json:"website_url,omitempty"`
	Status     string             `bson:"status" json:"status"` // active | inactive
	Order      int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
