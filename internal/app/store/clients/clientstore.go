// internal/app/store/clients/clientstore.go
package clientstore

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

var ErrNotFound = errors.New("client not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clients")}
}

// Create inserts a new client reference.
func (s *Store) Create(ctx context.Context, client models.Client) (models.Client, error) {
	now := time.Now().UTC()
	client.ID = primitive.NewObjectID()
	client.NameCI = text.Fold(client.Name)
	if client.Status == "" {
		client.Status = status.Active
	}
	client.CreatedAt = now
	client.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Client, error) {
	var client models.Client
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// Update modifies a client's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, client models.Client) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if client.Name != "" {
		set["name"] = client.Name
		set["name_ci"] = text.Fold(client.Name)
	}
	if client.LogoURL != "" {
		set["logo_url"] = client.LogoURL
	}
	if client.WebsiteURL != "" {
		set["website_url"] = client.WebsiteURL
	}
	if client.Status != "" {
		set["status"] = client.Status
	}
	if client.Order != 0 {
		set["order"] = client.Order
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

// Delete removes a client by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns clients matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Client, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clients []models.Client
	if err := cur.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// Count returns the number of clients matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
