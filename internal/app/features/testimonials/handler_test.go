package testimonials_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/features/testimonials"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	testimonialstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/testimonials"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func newTestHandler(t *testing.T) (*testimonials.Handler, *mongo.Database, *testimonialstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	files, err := storage.NewLocal(storage.LocalConfig{BasePath: t.TempDir(), BaseURL: "/uploads"})
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	store := testimonialstore.New(db)
	audit := auditlog.New(auditstore.New(db), logger)
	return testimonials.NewHandler(store, files, audit, logger), db, store
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

	fix.CreateTestimonial(ctx, "Priya Singh", 1)
	hidden := fix.CreateTestimonial(ctx, "Hidden Author", 2)
	if err := store.Update(ctx, hidden.ID, models.Testimonial{Status: status.Inactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/testimonials", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected only the active quote publicly, got %v", env.Count)
	}

	req = httptest.NewRequest("GET", "/api/testimonials?status=inactive", nil)
	req = testutil.WithUser(req, testutil.EditorUser())
	rec = httptest.NewRecorder()
	h.List(rec, req)

	env = decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected 1 inactive quote for staff, got %v", env.Count)
	}
}

func TestCreate_RequiresAuthorAndQuote(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"author":"Priya Singh","rating":5}`
	req := httptest.NewRequest("POST", "/api/testimonials", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Author and quote are required" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestCreate_RejectsOutOfRangeRating(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"author":"Priya Singh","quote":"Great team.","rating":6}`
	req := httptest.NewRequest("POST", "/api/testimonials", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Rating must be between 1 and 5" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	h, db, store := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tm := fix.CreateTestimonial(ctx, "Priya Singh", 1)

	body := `{"quote":"Updated quote.","rating":4}`
	req := httptest.NewRequest("PUT", "/api/testimonials/"+tm.ID.Hex(), strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", tm.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := store.GetByID(ctx, tm.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Quote != "Updated quote." || got.Rating != 4 {
		t.Errorf("expected quote and rating updated, got %q / %d", got.Quote, got.Rating)
	}
	if got.Author != "Priya Singh" {
		t.Errorf("expected author untouched, got %q", got.Author)
	}
}

func TestDelete_ThenGet(t *testing.T) {
	h, db, _ := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tm := fix.CreateTestimonial(ctx, "Priya Singh", 1)

	req := httptest.NewRequest("DELETE", "/api/testimonials/"+tm.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tm.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/testimonials/"+tm.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tm.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec = httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
