// internal/app/store/audit/auditstore.go
package auditstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Actions recorded against content entities.
const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionReorder       = "reorder"
	ActionLock          = "lock"
	ActionUnlock        = "unlock"
	ActionStatusChange  = "status_change"
	ActionLogin         = "login"
	ActionPasswordReset = "password_reset"
)

// Entry is one audit record: who did what to which entity.
type Entry struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Action    string              `bson:"action" json:"action"`
	Entity    string              `bson:"entity" json:"entity"` // collection name: blogs, banners, ...
	EntityID  *primitive.ObjectID `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	ActorID   *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	ActorName string              `bson:"actor_name,omitempty" json:"actor_name,omitempty"`
	IP        string              `bson:"ip,omitempty" json:"ip,omitempty"`
	Details   map[string]string   `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_logs")}
}

// Insert records one entry. CreatedAt is stamped here.
func (s *Store) Insert(ctx context.Context, entry Entry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Find returns entries matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]Entry, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
