package clients_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/features/clients"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	clientstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/clients"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func newTestHandler(t *testing.T) (*clients.Handler, *mongo.Database, *clientstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	files, err := storage.NewLocal(storage.LocalConfig{BasePath: t.TempDir(), BaseURL: "/uploads"})
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	store := clientstore.New(db)
	audit := auditlog.New(auditstore.New(db), logger)
	return clients.NewHandler(store, files, audit, logger), db, store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

func TestList_PublicSeesActiveOnly(t *testing.T) {
	h, db, store := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateClient(ctx, "Acme Corp", 1)
	hidden := fix.CreateClient(ctx, "Hidden Inc", 2)
	if err := store.Update(ctx, hidden.ID, models.Client{Status: status.Inactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/clients", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected only the active client publicly, got %v", env.Count)
	}

	// Staff can filter on the inactive set.
	req = httptest.NewRequest("GET", "/api/clients?status=inactive", nil)
	req = testutil.WithUser(req, testutil.EditorUser())
	rec = httptest.NewRecorder()
	h.List(rec, req)

	env = decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected 1 inactive client for staff, got %v", env.Count)
	}
}

func TestGet_InactiveHiddenFromPublic(t *testing.T) {
	h, db, store := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fix.CreateClient(ctx, "Acme Corp", 1)
	if err := store.Update(ctx, client.ID, models.Client{Status: status.Inactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/clients/"+client.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", client.ID.Hex())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404 for public caller, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/clients/"+client.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", client.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec = httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200 for staff caller, got %d", rec.Code)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"website_url":"https://acme.example.com"}`
	req := httptest.NewRequest("POST", "/api/clients", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Name is required" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestCreate_RejectsUnknownStatus(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"name":"Acme Corp","status":"archived"}`
	req := httptest.NewRequest("POST", "/api/clients", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDelete_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest("DELETE", "/api/clients/"+id, nil)
	req = testutil.WithChiURLParam(req, "id", id)
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Client not found" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestDelete_ThenGet(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	client := fix.CreateClient(ctx, "Acme Corp", 1)

	req := httptest.NewRequest("DELETE", "/api/clients/"+client.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", client.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/clients/"+client.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", client.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec = httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
