// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), name, Mongo ObjectID, and a
// found flag. ok=true means a valid, authenticated caller with a
// well-formed ObjectID; anything else fails closed.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(u.Role), u.Name, userID, true
}

// IsStaff reports whether the current caller is signed-in back-office staff
// (admin or editor). Staff see unpublished content on list endpoints.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "admin" || role == "editor")
}
