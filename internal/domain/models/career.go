// internal/domain/models/career.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobPosting is an open position listed on the careers page.
type JobPosting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"` // full-time, part-time, contract
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"` // open | closed

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
