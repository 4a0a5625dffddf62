// internal/app/store/team/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("team member not found")

// OrderUpdate pairs a member with its new display order for batch reorders.
type OrderUpdate struct {
	ID    primitive.ObjectID `json:"id"`
	Order int                `json:"order"`
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// Create inserts a new member profile.
func (s *Store) Create(ctx context.Context, member models.TeamMember) (models.TeamMember, error) {
	now := time.Now().UTC()
	member.ID = primitive.NewObjectID()
	member.NameCI = text.Fold(member.Name)
	if member.Status == "" {
		member.Status = status.Active
	}
	member.CreatedAt = now
	member.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, member); err != nil {
		return models.TeamMember{}, err
	}
	return member, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.TeamMember, error) {
	var member models.TeamMember
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return models.TeamMember{}, ErrNotFound
	}
	if err != nil {
		return models.TeamMember{}, err
	}
	return member, nil
}

// Update modifies a member's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, member models.TeamMember) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if member.Name != "" {
		set["name"] = member.Name
		set["name_ci"] = text.Fold(member.Name)
	}
	if member.Designation != "" {
		set["designation"] = member.Designation
	}
	if member.Bio != "" {
		set["bio"] = member.Bio
	}
	if member.PhotoURL != "" {
		set["photo_url"] = member.PhotoURL
	}
	if member.LinkedInURL != "" {
		set["linkedin_url"] = member.LinkedInURL
	}
	if member.Status != "" {
		set["status"] = member.Status
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder applies a batch of order updates concurrently. Each update is an
// independent write; a failure does not roll back the others.
func (s *Store) Reorder(ctx context.Context, updates []OrderUpdate) error {
	g, ctx := errgroup.WithContext(ctx)
	now := time.Now().UTC()
	for _, u := range updates {
		g.Go(func() error {
			_, err := s.c.UpdateByID(ctx, u.ID, bson.M{
				"$set": bson.M{"order": u.Order, "updated_at": now},
			})
			return err
		})
	}
	return g.Wait()
}

// Delete removes a member by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns members matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.TeamMember, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Count returns the number of members matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
