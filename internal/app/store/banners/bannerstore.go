// internal/app/store/banners/bannerstore.go
package bannerstore

import (
	"context"
	"errors"
	"time"

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

var ErrNotFound = errors.New("banner not found")

// OrderUpdate pairs a banner with its new display order for batch reorders.
type OrderUpdate struct {
	ID    primitive.ObjectID `json:"id"`
	Order int                `json:"order"`
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("banners")}
}

// Create inserts a new banner. Platform defaults to web and status to active.
func (s *Store) Create(ctx context.Context, banner models.Banner) (models.Banner, error) {
	now := time.Now().UTC()
	banner.ID = primitive.NewObjectID()
	if banner.Platform == "" {
		banner.Platform = models.PlatformWeb
	}
	if banner.Status == "" {
		banner.Status = status.Active
	}
	banner.CreatedAt = now
	banner.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, banner); err != nil {
		return models.Banner{}, err
	}
	return banner, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Banner, error) {
	var banner models.Banner
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&banner)
	if err == mongo.ErrNoDocuments {
		return models.Banner{}, ErrNotFound
	}
	if err != nil {
		return models.Banner{}, err
	}
	return banner, nil
}

// Update modifies a banner's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, banner models.Banner) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if banner.Title != "" {
		set["title"] = banner.Title
	}
	if banner.Subtitle != "" {
		set["subtitle"] = banner.Subtitle
	}
	if banner.ImageURL != "" {
		set["image_url"] = banner.ImageURL
	}
	if banner.LinkURL != "" {
		set["link_url"] = banner.LinkURL
	}
	if banner.Platform != "" {
		set["platform"] = banner.Platform
	}
	if banner.Status != "" {
		set["status"] = banner.Status
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

// Delete removes a banner by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns banners matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Banner, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var banners []models.Banner
	if err := cur.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// Count returns the number of banners matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
