// internal/domain/models/teammember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a staff profile shown on the public team page.
type TeamMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Designation string             `bson:"designation" json:"designation"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL    string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	LinkedInURL string             `bson:"linkedin_url,omitempty" json:"linkedin_url,omitempty"`
	Status      string             `bson:"status" json:"status"` // active | inactive
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
