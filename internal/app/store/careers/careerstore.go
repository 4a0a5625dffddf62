// internal/app/store/careers/careerstore.go
package careerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("job posting not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_postings")}
}

// Create inserts a new posting. A new posting defaults to open.
func (s *Store) Create(ctx context.Context, posting models.JobPosting) (models.JobPosting, error) {
	now := time.Now().UTC()
	posting.ID = primitive.NewObjectID()
	posting.TitleCI = text.Fold(posting.Title)
	if posting.Status == "" {
		posting.Status = status.Open
	}
	posting.CreatedAt = now
	posting.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, posting); err != nil {
		return models.JobPosting{}, err
	}
	return posting, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JobPosting, error) {
	var posting models.JobPosting
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&posting)
	if err == mongo.ErrNoDocuments {
		return models.JobPosting{}, ErrNotFound
	}
	if err != nil {
		return models.JobPosting{}, err
	}
	return posting, nil
}

// Update modifies a posting's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, posting models.JobPosting) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if posting.Title != "" {
		set["title"] = posting.Title
		set["title_ci"] = text.Fold(posting.Title)
	}
	if posting.Department != "" {
		set["department"] = posting.Department
	}
	if posting.Location != "" {
		set["location"] = posting.Location
	}
	if posting.Type != "" {
		set["type"] = posting.Type
	}
	if posting.Description != "" {
		set["description"] = posting.Description
	}
	if posting.Status != "" {
		set["status"] = posting.Status
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

// Delete removes a posting by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns postings matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.JobPosting, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var postings []models.JobPosting
	if err := cur.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

// Count returns the number of postings matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
