// internal/domain/models/enquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry is a public contact-form submission. ServiceID is an optional soft
// reference to the service the visitor asked about; no referential integrity
// is enforced.
type Enquiry struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Email     string              `bson:"email" json:"email"`
	Phone     string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string              `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string              `bson:"message" json:"message"`
	ServiceID *primitive.ObjectID `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Status    string              `bson:"status" json:"status"` // new | read | responded

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
