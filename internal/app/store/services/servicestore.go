// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/slugify"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("service not found")
	ErrDuplicateSlug = errors.New("a service with this slug already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// Create inserts a new service. Slug is derived from Name when not supplied.
func (s *Store) Create(ctx context.Context, svc models.Service) (models.Service, error) {
	now := time.Now().UTC()
	svc.ID = primitive.NewObjectID()
	svc.NameCI = text.Fold(svc.Name)
	if svc.Slug == "" {
		svc.Slug = slugify.Make(svc.Name)
	}
	if svc.Status == "" {
		svc.Status = status.Active
	}
	svc.CreatedAt = now
	svc.UpdatedAt = nil
	_, err := s.c.InsertOne(ctx, svc)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Service{}, ErrDuplicateSlug
		}
		return models.Service{}, err
	}
	return svc, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Service, error) {
	var svc models.Service
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return models.Service{}, ErrNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Service, error) {
	var svc models.Service
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return models.Service{}, ErrNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Update modifies a service's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, svc models.Service) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if svc.Name != "" {
		set["name"] = svc.Name
		set["name_ci"] = text.Fold(svc.Name)
	}
	if svc.Slug != "" {
		set["slug"] = svc.Slug
	}
	if svc.Summary != "" {
		set["summary"] = svc.Summary
	}
	if svc.Body != "" {
		set["body"] = svc.Body
	}
	if svc.IconURL != "" {
		set["icon_url"] = svc.IconURL
	}
	if svc.ImageURL != "" {
		set["image_url"] = svc.ImageURL
	}
	if svc.Status != "" {
		set["status"] = svc.Status
	}
	if svc.Order != 0 {
		set["order"] = svc.Order
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a service by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns services matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Service, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// Count returns the number of services matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
