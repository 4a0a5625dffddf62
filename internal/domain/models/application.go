// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobApplication is a public submission against a JobPosting. ResumePath is
// the storage path of the uploaded resume; ResumeURL is the public URL when
// local storage serves it.
type JobApplication struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostingID  *primitive.ObjectID `bson:"posting_id,omitempty" json:"posting_id,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string              `bson:"message,omitempty" json:"message,omitempty"`
	ResumePath string              `bson:"resume_path,omitempty" json:"-"`
	ResumeName string              `bson:"resume_name,omitempty" json:"resume_name,omitempty"`
	ResumeURL  string              `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	Status     string              `bson:"status" json:"status"` // new | reviewed | rejected

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
