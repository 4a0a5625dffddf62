package blogstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	blogstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/blogs"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{
		Title:   "Ten SEO Tips for 2026",
		Content: "<p>Content here.</p>",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Slug != "ten-seo-tips-for-2026" {
		t.Errorf("expected derived slug, got %q", created.Slug)
	}
	if created.Status != status.Draft {
		t.Errorf("expected default status 'draft', got %q", created.Status)
	}
	if created.Views != 0 {
		t.Errorf("expected zero views, got %d", created.Views)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.UpdatedAt != nil {
		t.Error("expected UpdatedAt to be unset on create")
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Blog{Title: "Same Title"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.Blog{Title: "Same Title"})
	if err != blogstore.ErrDuplicateSlug {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStore_GetPublishedBySlug_IncrementsViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{Title: "Published Post", Status: status.Published})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetPublishedBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("GetPublishedBySlug failed: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("expected views 1 after first read, got %d", got.Views)
	}

	got, err = store.GetPublishedBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("second GetPublishedBySlug failed: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("expected views 2 after second read, got %d", got.Views)
	}
}

func TestStore_GetPublishedBySlug_DraftHidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{Title: "Draft Post"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetPublishedBySlug(ctx, created.Slug); err != blogstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for draft, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{Title: "Original Title"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, created.ID, models.Blog{Title: "Updated Title", Status: status.Published})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if got.Status != status.Published {
		t.Errorf("expected status published, got %q", got.Status)
	}
	if got.Slug != created.Slug {
		t.Errorf("slug should be unchanged, got %q", got.Slug)
	}
	if got.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set after update")
	}
}

func TestStore_Update_LockedRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{Title: "Locked Post"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetLocked(ctx, created.ID, true); err != nil {
		t.Fatalf("SetLocked failed: %v", err)
	}

	err = store.Update(ctx, created.ID, models.Blog{Title: "Should Not Apply"})
	if err != blogstore.ErrLocked {
		t.Errorf("expected ErrLocked, got %v", err)
	}

	// Unlock and update goes through.
	if err := store.SetLocked(ctx, created.ID, false); err != nil {
		t.Fatalf("SetLocked(false) failed: %v", err)
	}
	if err := store.Update(ctx, created.ID, models.Blog{Title: "Now Applies"}); err != nil {
		t.Fatalf("Update after unlock failed: %v", err)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), models.Blog{Title: "Nope"})
	if err != blogstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Blog{Title: "To Delete"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	if _, err := store.GetByID(ctx, created.ID); err != blogstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted on second delete, got %d", n)
	}
}

func TestStore_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := blogstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, b := range []models.Blog{
		{Title: "Draft One"},
		{Title: "Draft Two"},
		{Title: "Published One", Status: status.Published},
	} {
		if _, err := store.Create(ctx, b); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[status.Draft] != 2 {
		t.Errorf("expected 2 drafts, got %d", counts[status.Draft])
	}
	if counts[status.Published] != 1 {
		t.Errorf("expected 1 published, got %d", counts[status.Published])
	}

	total, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
}
