// internal/app/features/authapi/handler.go

// Package authapi serves sign-in, the OTP password reset flow, and the
// current-user endpoint for the back office.
package authapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/mailer"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/ratelimit"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	users    *userstore.Store
	tokens   *auth.TokenManager
	mail     *mailer.Mailer
	limiter  *ratelimit.CredentialLimiter
	audit    *auditlog.Logger
	log      *zap.Logger
	siteName string
	resetTTL time.Duration
}

type Config struct {
	SiteName string
	ResetTTL time.Duration
}

func NewHandler(users *userstore.Store, tokens *auth.TokenManager, mail *mailer.Mailer, limiter *ratelimit.CredentialLimiter, audit *auditlog.Logger, logger *zap.Logger, cfg Config) *Handler {
	if cfg.SiteName == "" {
		cfg.SiteName = "Jaikvik Technology"
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 10 * time.Minute
	}
	return &Handler{
		users:    users,
		tokens:   tokens,
		mail:     mail,
		limiter:  limiter,
		audit:    audit,
		log:      logger,
		siteName: cfg.SiteName,
		resetTTL: cfg.ResetTTL,
	}
}

type userView struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Login handles POST /api/auth/login. Disabled accounts and unknown emails
// produce the same 401 so the endpoint does not reveal which accounts exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Email and password are required")
		return
	}

	if ok, msg := h.limiter.Check(r, in.Email); !ok {
		jsonapi.Fail(w, apierr.Unauthorized, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, in.Email)
	if err == userstore.ErrNotFound {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Sign-in failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid credentials")
		return
	}
	if user.Status != status.Active {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid credentials")
		return
	}
	if user.Role != models.RoleAdmin {
		// Only admins sign in to the back office. The response is
		// indistinguishable from a bad password.
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.FullName, user.Email, user.Role)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Sign-in failed")
		return
	}

	h.limiter.ResetEmail(user.Email)
	h.audit.Record(r, auditstore.ActionLogin, "users", &user.ID, nil)

	jsonapi.OK(w, map[string]any{
		"token":      token,
		"expires_in": int64(h.tokens.Expiry().Seconds()),
		"user": userView{
			ID:       user.ID.Hex(),
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. It always responds
// with the same message regardless of whether the account exists.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Email is required")
		return
	}

	if ok, msg := h.limiter.Check(r, in.Email); !ok {
		jsonapi.Fail(w, apierr.Unauthorized, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	const sent = "If the account exists, a reset code has been sent"

	user, err := h.users.GetByEmail(ctx, in.Email)
	if err == userstore.ErrNotFound {
		jsonapi.Message(w, sent)
		return
	}
	if err != nil {
		h.log.Error("forgot password lookup failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to process request")
		return
	}

	code, err := generateResetCode()
	if err != nil {
		h.log.Error("reset code generation failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to process request")
		return
	}

	expires := time.Now().UTC().Add(h.resetTTL)
	if err := h.users.SetResetCode(ctx, user.ID, code, expires); err != nil {
		h.log.Error("reset code save failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to process request")
		return
	}

	email := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  h.siteName,
		Code:      code,
		ExpiresIn: formatTTL(h.resetTTL),
	})
	email.To = user.Email
	if err := h.mail.Send(email); err != nil {
		jsonapi.Fail(w, apierr.Internal, "Failed to send reset email")
		return
	}

	jsonapi.Message(w, sent)
}

// ResetPassword handles POST /api/auth/reset-password with
// {email, code, new_password}.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	if in.Email == "" || in.Code == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Email and code are required")
		return
	}
	if len(in.NewPassword) < 8 {
		jsonapi.Fail(w, apierr.ValidationFailed, "Password must be at least 8 characters")
		return
	}

	if ok, msg := h.limiter.Check(r, in.Email); !ok {
		jsonapi.Fail(w, apierr.Unauthorized, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, in.Email)
	if err == userstore.ErrNotFound {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid or expired reset code")
		return
	}
	if err != nil {
		h.log.Error("reset password lookup failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to reset password")
		return
	}

	if user.ResetCode == "" || user.ResetCode != in.Code {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid or expired reset code")
		return
	}
	if user.ResetExpiresAt == nil || time.Now().UTC().After(*user.ResetExpiresAt) {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid or expired reset code")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to reset password")
		return
	}

	if err := h.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		h.log.Error("password save failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to reset password")
		return
	}

	h.limiter.ResetEmail(user.Email)
	h.audit.Record(r, auditstore.ActionPasswordReset, "users", &user.ID, nil)
	jsonapi.Message(w, "Password has been reset")
}

// Me handles GET /api/auth/me for the signed-in caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonapi.Fail(w, apierr.Unauthorized, "Authentication required")
		return
	}

	// Reload the record so fresh role/status changes are reflected even
	// while an older token remains valid.
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		jsonapi.Fail(w, apierr.Unauthorized, "Invalid token subject")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByID(ctx, id)
	if err == userstore.ErrNotFound {
		jsonapi.Fail(w, apierr.Unauthorized, "Account no longer exists")
		return
	}
	if err != nil {
		h.log.Error("me lookup failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load account")
		return
	}

	jsonapi.OK(w, userView{
		ID:       user.ID.Hex(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// generateResetCode returns a 6-digit numeric OTP.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func formatTTL(d time.Duration) string {
	mins := int(d.Minutes())
	if mins <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", mins)
}
