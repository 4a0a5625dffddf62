package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newManager(t *testing.T, expiry time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret-0123456789", expiry)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return m
}

func TestIssueAndValidate(t *testing.T) {
	m := newManager(t, time.Hour)

	token, err := m.Issue("6543", "Admin User", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Subject != "6543" {
		t.Errorf("subject: got %q, want %q", claims.Subject, "6543")
	}
	if claims.Role != "admin" {
		t.Errorf("role: got %q, want %q", claims.Role, "admin")
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email: got %q", claims.Email)
	}
}

func TestValidateExpired(t *testing.T) {
	m := newManager(t, -time.Minute)

	token, err := m.Issue("u1", "n", "e", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Validate(token); err != ErrExpiredCredentials {
		t.Errorf("Validate: got %v, want ErrExpiredCredentials", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	m1 := newManager(t, time.Hour)
	m2, _ := NewTokenManager("another-secret-entirely", time.Hour)

	token, _ := m1.Issue("u1", "n", "e", "admin")
	if _, err := m2.Validate(token); err != ErrInvalidCredentials {
		t.Errorf("Validate: got %v, want ErrInvalidCredentials", err)
	}
}

func TestNewTokenManagerEmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateRequireRole(t *testing.T) {
	m := newManager(t, time.Hour)
	gate := NewGate(m, zap.NewNop())

	handler := gate.LoadTokenUser(gate.RequireRole("admin")(okHandler()))

	// No token: 401.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/blogs", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", rec.Code)
	}

	// Valid token, wrong role: 403.
	editorToken, _ := m.Issue("u1", "Ed", "ed@example.com", "editor")
	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+editorToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("editor against admin route: got %d, want 403", rec.Code)
	}

	// Valid admin token: 200.
	adminToken, _ := m.Issue("u2", "Ad", "ad@example.com", "admin")
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: got %d, want 200", rec.Code)
	}
}

func TestGateRejectsGarbageToken(t *testing.T) {
	m := newManager(t, time.Hour)
	gate := NewGate(m, zap.NewNop())
	handler := gate.LoadTokenUser(okHandler())

	req := httptest.NewRequest("GET", "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", rec.Code)
	}
}

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := extractBearer(r); got != "" {
		t.Errorf("no header: got %q", got)
	}

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	if got := extractBearer(r); got != "abc.def.ghi" {
		t.Errorf("bearer: got %q", got)
	}

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := extractBearer(r); got != "" {
		t.Errorf("basic scheme: got %q, want empty", got)
	}

	r.Header.Set("Authorization", "bearer lower.case.token")
	if got := extractBearer(r); got != "lower.case.token" {
		t.Errorf("case-insensitive scheme: got %q", got)
	}
}
