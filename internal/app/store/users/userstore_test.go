package userstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName:     "Asha Verma",
		Email:        "Asha@Example.com",
		PasswordHash: "$2a$10$fakehashfortests",
		Role:         models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI != "asha@example.com" {
		t.Errorf("expected folded email_ci, got %q", created.EmailCI)
	}
	if created.Status != status.Active {
		t.Errorf("expected default status 'active', got %q", created.Status)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		FullName:     "First",
		Email:        "dup@example.com",
		PasswordHash: "x",
		Role:         models.RoleEditor,
	}
	if _, err := store.Create(ctx, user); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Different case, same folded address.
	user.Email = "DUP@example.com"
	if _, err := store.Create(ctx, user); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName:     "Lookup User",
		Email:        "lookup@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "LOOKUP@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("expected to find created user by folded email")
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ResetCodeLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName:     "Reset User",
		Email:        "reset@example.com",
		PasswordHash: "old-hash",
		Role:         models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	expires := time.Now().UTC().Add(10 * time.Minute)
	if err := store.SetResetCode(ctx, created.ID, "482910", expires); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ResetCode != "482910" {
		t.Errorf("expected stored reset code, got %q", got.ResetCode)
	}
	if got.ResetExpiresAt == nil {
		t.Fatal("expected reset expiry to be set")
	}

	// Setting the password clears the pending code.
	if err := store.SetPassword(ctx, created.ID, "new-hash"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected new hash, got %q", got.PasswordHash)
	}
	if got.ResetCode != "" || got.ResetExpiresAt != nil {
		t.Error("expected reset code cleared after password change")
	}
}

func TestStore_ClearExpiredResetCodes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	expired, err := store.Create(ctx, models.User{
		FullName: "Expired", Email: "expired@example.com", PasswordHash: "x", Role: models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fresh, err := store.Create(ctx, models.User{
		FullName: "Fresh", Email: "fresh@example.com", PasswordHash: "x", Role: models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now().UTC()
	if err := store.SetResetCode(ctx, expired.ID, "111111", now.Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}
	if err := store.SetResetCode(ctx, fresh.ID, "222222", now.Add(10*time.Minute)); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}

	count, err := store.ClearExpiredResetCodes(ctx, now)
	if err != nil {
		t.Fatalf("ClearExpiredResetCodes failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 cleared, got %d", count)
	}

	got, _ := store.GetByID(ctx, expired.ID)
	if got.ResetCode != "" {
		t.Error("expected expired code to be cleared")
	}
	got, _ = store.GetByID(ctx, fresh.ID)
	if got.ResetCode != "222222" {
		t.Error("expected fresh code to survive")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Before", Email: "before@example.com", PasswordHash: "x", Role: models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, created.ID, models.User{FullName: "After", Status: status.Disabled})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FullName != "After" {
		t.Errorf("expected updated name, got %q", got.FullName)
	}
	if got.Status != status.Disabled {
		t.Errorf("expected status disabled, got %q", got.Status)
	}
	if got.Email != "before@example.com" {
		t.Error("email should be unchanged")
	}

	if err := store.Update(ctx, primitive.NewObjectID(), models.User{FullName: "X"}); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
