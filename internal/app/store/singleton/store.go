// internal/app/store/singleton/store.go

// Package singleton persists one-document collections (footer, navbar, hero,
// about). Get returns the sole document; Save overwrites it, creating it on
// first write.
package singleton

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document is implemented by the singleton site-page models so the store can
// stamp identity and update time before writing.
type Document interface {
	SetID(id primitive.ObjectID)
	GetID() primitive.ObjectID
	SetUpdatedAt(t time.Time)
}

// Store manages the single document of one collection.
type Store[T Document] struct {
	c *mongo.Collection
}

// New creates a singleton store over the named collection.
func New[T Document](db *mongo.Database, collection string) *Store[T] {
	return &Store[T]{c: db.Collection(collection)}
}

// Get returns the document and true, or the zero value and false when the
// collection is still empty.
func (s *Store[T]) Get(ctx context.Context) (T, bool, error) {
	var doc T
	err := s.c.FindOne(ctx, bson.M{}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, err
	}
	return doc, true, nil
}

// Save overwrites the document, creating it when the collection is empty.
// The write is a single upsert against the empty filter, so once a document
// exists every save replaces it in place. Overlapping first saves on an
// empty collection can still each insert; subsequent saves converge on one
// document.
func (s *Store[T]) Save(ctx context.Context, doc T) (T, error) {
	// The replacement carries no _id, so a replace keeps the existing one.
	doc.SetID(primitive.NilObjectID)
	doc.SetUpdatedAt(time.Now().UTC())

	opts := options.Replace().SetUpsert(true)
	res, err := s.c.ReplaceOne(ctx, bson.M{}, doc, opts)
	if err != nil {
		return doc, err
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		doc.SetID(oid)
		return doc, nil
	}

	saved, _, err := s.Get(ctx)
	if err != nil {
		return doc, err
	}
	return saved, nil
}
