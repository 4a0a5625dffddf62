// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a back-office account (admins and editors).
// Public visitors never have a user record; only staff sign in.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | editor
	Status       string             `bson:"status" json:"status"`

	// Password reset: a short-lived numeric code emailed to the account
	// holder. Cleared on successful reset or by the cleanup worker once
	// expired.
	ResetCode      string     `bson:"reset_code,omitempty" json:"-"`
	ResetExpiresAt *time.Time `bson:"reset_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Roles recognized on User.Role.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
