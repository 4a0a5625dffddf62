package enquirystore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	enquirystore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/enquiries"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func TestStore_Create_AlwaysNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enquirystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A submitted status is ignored; public submissions always start new.
	created, err := store.Create(ctx, models.Enquiry{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Tell me about your SEO packages.",
		Status:  status.Responded,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != status.New {
		t.Errorf("expected status new, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enquirystore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	enq := f.CreateEnquiry(ctx, "Visitor", "v@example.com")

	if err := store.SetStatus(ctx, enq.ID, status.Read); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, enq.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != status.Read {
		t.Errorf("expected status read, got %q", got.Status)
	}
	if got.UpdatedAt == nil {
		t.Error("expected UpdatedAt set by status change")
	}

	if err := store.SetStatus(ctx, primitive.NewObjectID(), status.Read); err != enquirystore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enquirystore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.CreateEnquiry(ctx, "A", "a@example.com")
	f.CreateEnquiry(ctx, "B", "b@example.com")
	f.CreateEnquiry(ctx, "C", "c@example.com")

	if err := store.SetStatus(ctx, a.ID, status.Responded); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[status.New] != 2 {
		t.Errorf("expected 2 new, got %d", counts[status.New])
	}
	if counts[status.Responded] != 1 {
		t.Errorf("expected 1 responded, got %d", counts[status.Responded])
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enquirystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Delete(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted, got %d", n)
	}
}
