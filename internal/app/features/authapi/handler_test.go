package authapi_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/features/authapi"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/mailer"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/ratelimit"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func newTestHandler(t *testing.T) (*authapi.Handler, *mongo.Database, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	tokens, err := auth.NewTokenManager("test-secret-0123456789-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	users := userstore.New(db)
	mail := mailer.New(mailer.Config{Host: "localhost", Port: 1025, From: "noreply@test.local"}, logger)
	limiter := ratelimit.NewCredentialLimiter(1000, time.Minute, 1000, time.Minute)
	audit := auditlog.New(auditstore.New(db), logger)

	h := authapi.NewHandler(users, tokens, mail, limiter, audit, logger, authapi.Config{
		SiteName: "Test Site",
		ResetTTL: 10 * time.Minute,
	})
	return h, db, users
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

func TestLogin_Success(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateAdmin(ctx, "Asha Verma", "asha@example.com", "correct-horse-1")

	body := `{"email":"asha@example.com","password":"correct-horse-1"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var data struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
		User      struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode login data: %v", err)
	}
	if data.Token == "" {
		t.Error("expected a bearer token in the response")
	}
	if data.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", data.ExpiresIn)
	}
	if data.User.Role != "admin" {
		t.Errorf("expected role admin, got %q", data.User.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateAdmin(ctx, "Asha Verma", "asha@example.com", "correct-horse-1")

	body := `{"email":"asha@example.com","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"email":"nobody@example.com","password":"whatever1"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	h, db, users := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fix.CreateAdmin(ctx, "Asha Verma", "asha@example.com", "correct-horse-1")
	if err := users.Update(ctx, user.ID, models.User{Status: status.Disabled}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	body := `{"email":"asha@example.com","password":"correct-horse-1"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	// Same response as a bad password so account state is not revealed.
	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestLogin_EditorRejected(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateEditor(ctx, "Ravi Kumar", "ravi@example.com", "correct-horse-1")

	// Correct credentials, but only admins may sign in.
	body := `{"email":"ravi@example.com","password":"correct-horse-1"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"email":"nobody@example.com"}`
	req := httptest.NewRequest("POST", "/api/auth/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, req)

	// Unknown accounts get the same acknowledgement as real ones.
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "If the account exists, a reset code has been sent" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestResetPassword_Flow(t *testing.T) {
	h, db, users := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fix.CreateEditor(ctx, "Ravi Kumar", "ravi@example.com", "old-password-1")
	expires := time.Now().UTC().Add(10 * time.Minute)
	if err := users.SetResetCode(ctx, user.ID, "123456", expires); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	body := `{"email":"ravi@example.com","code":"123456","new_password":"new-password-1"}`
	req := httptest.NewRequest("POST", "/api/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("new-password-1")) != nil {
		t.Error("expected password to be updated")
	}
	if reloaded.ResetCode != "" {
		t.Error("expected reset code to be cleared after use")
	}
}

func TestResetPassword_WrongCode(t *testing.T) {
	h, db, users := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fix.CreateEditor(ctx, "Ravi Kumar", "ravi@example.com", "old-password-1")
	expires := time.Now().UTC().Add(10 * time.Minute)
	if err := users.SetResetCode(ctx, user.ID, "123456", expires); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	body := `{"email":"ravi@example.com","code":"654321","new_password":"new-password-1"}`
	req := httptest.NewRequest("POST", "/api/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestResetPassword_ExpiredCode(t *testing.T) {
	h, db, users := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fix.CreateEditor(ctx, "Ravi Kumar", "ravi@example.com", "old-password-1")
	expires := time.Now().UTC().Add(-time.Minute)
	if err := users.SetResetCode(ctx, user.ID, "123456", expires); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	body := `{"email":"ravi@example.com","code":"123456","new_password":"new-password-1"}`
	req := httptest.NewRequest("POST", "/api/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ResetPassword(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMe(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fix.CreateAdmin(ctx, "Asha Verma", "asha@example.com", "correct-horse-1")

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req = testutil.WithUser(req, testutil.TestUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
	})
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var data struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Email != "asha@example.com" {
		t.Errorf("expected account email, got %q", data.Email)
	}
}

func TestMe_DeletedAccount(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
