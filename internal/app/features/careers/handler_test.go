package careers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/features/careers"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	careerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/careers"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func newTestHandler(t *testing.T) (*careers.Handler, *mongo.Database, *careerstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store := careerstore.New(db)
	audit := auditlog.New(auditstore.New(db), logger)
	return careers.NewHandler(store, audit, logger), db, store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
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

func TestList_PublicSeesOpenOnly(t *testing.T) {
	h, db, store := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateJobPosting(ctx, "Open Role")
	if _, err := store.Create(ctx, models.JobPosting{
		Title:       "Closed Role",
		Description: "Filled.",
		Status:      status.Closed,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/careers", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected public list to hold only open postings, got %v", env.Count)
	}

	// Staff can ask for closed postings.
	req = httptest.NewRequest("GET", "/api/careers?status=closed", nil)
	req = testutil.WithUser(req, testutil.EditorUser())
	rec = httptest.NewRecorder()
	h.List(rec, req)

	env = decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected 1 closed posting for staff filter, got %v", env.Count)
	}
}

func TestList_DepartmentFilter(t *testing.T) {
	h, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.JobPosting{Title: "Backend Dev", Description: "Go", Department: "engineering"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.JobPosting{Title: "Copywriter", Description: "Words", Department: "marketing"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/careers?department=engineering", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	env := decodeEnvelope(t, rec)
	if env.Count == nil || *env.Count != 1 {
		t.Fatalf("expected 1 engineering posting, got %v", env.Count)
	}
}

func TestCreate_RequiresTitleAndDescription(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"title":"Backend Dev"}`
	req := httptest.NewRequest("POST", "/api/careers", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdate_ClosePosting(t *testing.T) {
	h, db, store := newTestHandler(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	posting := fix.CreateJobPosting(ctx, "Open Role")

	body := `{"status":"closed"}`
	req := httptest.NewRequest("PUT", "/api/careers/"+posting.ID.Hex(), strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", posting.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := store.GetByID(ctx, posting.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Status != status.Closed {
		t.Errorf("expected closed, got %q", reloaded.Status)
	}
}
