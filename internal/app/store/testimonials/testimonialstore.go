// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("testimonial not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("testimonials")}
}

// Create inserts a new testimonial. Rating must be 1..5.
func (s *Store) Create(ctx context.Context, tm models.Testimonial) (models.Testimonial, error) {
	if tm.Rating < 1 || tm.Rating > 5 {
		return models.Testimonial{}, apierr.New(apierr.ValidationFailed, "Rating must be between 1 and 5")
	}
	now := time.Now().UTC()
	tm.ID = primitive.NewObjectID()
	if tm.Status == "" {
		tm.Status = status.Active
	}
	tm.CreatedAt = now
	tm.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, tm); err != nil {
		return models.Testimonial{}, err
	}
	return tm, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Testimonial, error) {
	var tm models.Testimonial
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tm)
	if err == mongo.ErrNoDocuments {
		return models.Testimonial{}, ErrNotFound
	}
	if err != nil {
		return models.Testimonial{}, err
	}
	return tm, nil
}

// Update modifies a testimonial's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, tm models.Testimonial) error {
	if tm.Rating != 0 && (tm.Rating < 1 || tm.Rating > 5) {
		return apierr.New(apierr.ValidationFailed, "Rating must be between 1 and 5")
	}
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if tm.Author != "" {
		set["author"] = tm.Author
	}
	if tm.Company != "" {
		set["company"] = tm.Company
	}
	if tm.Quote != "" {
		set["quote"] = tm.Quote
	}
	if tm.Rating != 0 {
		set["rating"] = tm.Rating
	}
	if tm.PhotoURL != "" {
		set["photo_url"] = tm.PhotoURL
	}
	if tm.Status != "" {
		set["status"] = tm.Status
	}
	if tm.Order != 0 {
		set["order"] = tm.Order
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

// Delete removes a testimonial by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns testimonials matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Testimonial, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Testimonial
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of testimonials matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
