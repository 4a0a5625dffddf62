// internal/app/store/enquiries/enquirystore.go
package enquirystore

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

var ErrNotFound = errors.New("enquiry not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enquiries")}
}

// Create inserts a public contact-form submission. A new enquiry is always
// status new.
func (s *Store) Create(ctx context.Context, enq models.Enquiry) (models.Enquiry, error) {
	now := time.Now().UTC()
	enq.ID = primitive.NewObjectID()
	enq.Status = status.New
	enq.CreatedAt = now
	enq.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, enq); err != nil {
		return models.Enquiry{}, err
	}
	return enq, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Enquiry, error) {
	var enq models.Enquiry
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&enq)
	if err == mongo.ErrNoDocuments {
		return models.Enquiry{}, ErrNotFound
	}
	if err != nil {
		return models.Enquiry{}, err
	}
	return enq, nil
}

// SetStatus moves an enquiry through the inbox workflow (new, read, responded).
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

// Delete removes an enquiry by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns enquiries matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Enquiry, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var enquiries []models.Enquiry
	if err := cur.All(ctx, &enquiries); err != nil {
		return nil, err
	}
	return enquiries, nil
}

// Count returns the number of enquiries matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByStatus groups enquiry counts by status for the dashboard.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
