package teamstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	teamstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/team"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
	"github.com/jaikviktechnology/jaikvik-api/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.TeamMember{
		Name:        "Priya Sharma",
		Designation: "Design Lead",
		Order:       1,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Status != status.Active {
		t.Errorf("expected default status active, got %q", created.Status)
	}
}

func TestStore_Reorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := f.CreateTeamMember(ctx, "Alpha", 1)
	b := f.CreateTeamMember(ctx, "Beta", 2)

	err := store.Reorder(ctx, []teamstore.OrderUpdate{
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 1},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	got, err := store.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 members, got %d", len(got))
	}
	if got[0].Name != "Beta" || got[1].Name != "Alpha" {
		t.Errorf("expected order Beta, Alpha; got %s, %s", got[0].Name, got[1].Name)
	}
}
