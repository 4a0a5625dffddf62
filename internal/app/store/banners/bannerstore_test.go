package bannerstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	bannerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/banners"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Banner{
		Title:    "Summer Sale",
		ImageURL: "http://localhost/uploads/banners/x.jpg",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Platform != models.PlatformWeb {
		t.Errorf("expected default platform web, got %q", created.Platform)
	}
	if created.Status != status.Active {
		t.Errorf("expected default status active, got %q", created.Status)
	}
}

func TestStore_Reorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.CreateBanner(ctx, "A", 1)
	b := f.CreateBanner(ctx, "B", 2)
	c := f.CreateBanner(ctx, "C", 3)

	err := store.Reorder(ctx, []bannerstore.OrderUpdate{
		{ID: a.ID, Order: 3},
		{ID: b.ID, Order: 1},
		{ID: c.ID, Order: 2},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	got, err := store.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(got))
	}
	wantTitles := []string{"B", "C", "A"}
	for i, banner := range got {
		if banner.Title != wantTitles[i] {
			t.Errorf("position %d: expected %q, got %q", i, wantTitles[i], banner.Title)
		}
		if banner.UpdatedAt == nil {
			t.Errorf("position %d: expected UpdatedAt set by reorder", i)
		}
	}
}

func TestStore_Reorder_UnknownIDIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.CreateBanner(ctx, "A", 1)

	// An unknown ID matches nothing; the write is a no-op, not an error.
	err := store.Reorder(ctx, []bannerstore.OrderUpdate{
		{ID: a.ID, Order: 5},
		{ID: primitive.NewObjectID(), Order: 9},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Order != 5 {
		t.Errorf("expected order 5, got %d", got.Order)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), models.Banner{Title: "X"})
	if err != bannerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bannerstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	banner := f.CreateBanner(ctx, "Doomed", 1)

	n, err := store.Delete(ctx, banner.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := store.GetByID(ctx, banner.ID); err != bannerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
