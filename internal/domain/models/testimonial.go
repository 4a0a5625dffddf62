// internal/domain/models/testimonial.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial is a client quote shown on public pages.
type Testimonial struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author     string             `bson:"author" json:"author"`
	Company    string             `bson:"company,omitempty" json:"company,omitempty"`
	Quote      string             `bson:"quote" json:"quote"`
	Rating     int                `bson:"rating" json:"rating"` // 1..5
	PhotoURL   string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Status     string             `bson:"status" json:"status"` // active | inactive
	Order      int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
