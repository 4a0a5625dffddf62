// internal/app/features/usersapi/handler.go

// Package usersapi serves back-office account management. Admin only;
// editors never reach these routes.
package usersapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	users *userstore.Store
	audit *auditlog.Logger
	log   *zap.Logger
}

func NewHandler(users *userstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{users: users, audit: audit, log: logger}
}

type userInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleEditor
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "role", Value: 1}, {Key: "full_name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	users, err := h.users.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list users")
		return
	}
	total, err := h.users.Count(ctx, filter)
	if err != nil {
		h.log.Error("count users failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	jsonapi.List(w, users, len(users), total)
}

// Get handles GET /api/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByID(ctx, id)
	if err == userstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error("get user failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load user")
		return
	}
	jsonapi.OK(w, user)
}

// Create handles POST /api/users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FullName == "" || in.Email == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Full name and email are required")
		return
	}
	if len(in.Password) < 8 {
		jsonapi.Fail(w, apierr.ValidationFailed, "Password must be at least 8 characters")
		return
	}
	if !validRole(in.Role) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Role must be admin or editor")
		return
	}
	if in.Status != "" && !status.IsAccount(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or disabled")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.Create(ctx, models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       in.Status,
	})
	if err == userstore.ErrDuplicateEmail {
		jsonapi.Fail(w, apierr.Conflict, "A user with this email already exists")
		return
	}
	if err != nil {
		h.log.Error("create user failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create user")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "users", &user.ID, map[string]string{"email": user.Email})
	jsonapi.Created(w, user)
}

// Update handles PUT /api/users/{id}: a partial update. A non-empty password
// field re-hashes; empty leaves the hash alone.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid user ID")
		return
	}

	var in userInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if in.Role != "" && !validRole(in.Role) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Role must be admin or editor")
		return
	}
	if in.Status != "" && !status.IsAccount(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or disabled")
		return
	}
	if in.Password != "" && len(in.Password) < 8 {
		jsonapi.Fail(w, apierr.ValidationFailed, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	update := models.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Role:     in.Role,
		Status:   in.Status,
	}
	err = h.users.Update(ctx, id, update)
	switch err {
	case nil:
	case userstore.ErrNotFound:
		jsonapi.Fail(w, apierr.NotFound, "User not found")
		return
	case userstore.ErrDuplicateEmail:
		jsonapi.Fail(w, apierr.Conflict, "A user with this email already exists")
		return
	default:
		h.log.Error("update user failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update user")
		return
	}

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			h.log.Error("password hash failed", zap.Error(err))
			jsonapi.Fail(w, apierr.Internal, "Failed to update user")
			return
		}
		if err := h.users.SetPassword(ctx, id, string(hash)); err != nil {
			h.log.Error("password save failed", zap.Error(err))
			jsonapi.Fail(w, apierr.Internal, "Failed to update user")
			return
		}
	}

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload user failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load user")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "users", &id, nil)
	jsonapi.OK(w, user)
}

// Delete handles DELETE /api/users/{id}. Self-deletion is rejected so an
// admin cannot lock the back office out by removing the last usable account
// mid-session.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid user ID")
		return
	}

	if u, ok := auth.CurrentUser(r); ok && u.ID == id.Hex() {
		jsonapi.Fail(w, apierr.ValidationFailed, "You cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.users.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete user failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete user")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "User not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "users", &id, nil)
	jsonapi.Message(w, "User deleted")
}
