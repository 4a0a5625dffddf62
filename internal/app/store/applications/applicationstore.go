// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"errors"
	"time"

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

var ErrNotFound = errors.New("job application not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_applications")}
}

// Create inserts a public application. A new application is always status new.
func (s *Store) Create(ctx context.Context, app models.JobApplication) (models.JobApplication, error) {
	now := time.Now().UTC()
	app.ID = primitive.NewObjectID()
	app.Status = status.New
	app.CreatedAt = now
	app.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.JobApplication{}, err
	}
	return app, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JobApplication, error) {
	var app models.JobApplication
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return models.JobApplication{}, ErrNotFound
	}
	if err != nil {
		return models.JobApplication{}, err
	}
	return app, nil
}

// SetStatus moves an application through the review workflow.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": st, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an application by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns applications matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.JobApplication, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.JobApplication
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Count returns the number of applications matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
