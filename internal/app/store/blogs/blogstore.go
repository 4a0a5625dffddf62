// internal/app/store/blogs/blogstore.go
package blogstore

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
	ErrNotFound      = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("a blog with this slug already exists")
	ErrLocked        = errors.New("blog is locked")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// Create inserts a new post. Slug is derived from Title when not supplied.
// A new post defaults to draft.
func (s *Store) Create(ctx context.Context, blog models.Blog) (models.Blog, error) {
	now := time.Now().UTC()
	blog.ID = primitive.NewObjectID()
	blog.TitleCI = text.Fold(blog.Title)
	if blog.Slug == "" {
		blog.Slug = slugify.Make(blog.Title)
	}
	if blog.Status == "" {
		blog.Status = status.Draft
	}
	blog.Views = 0
	blog.CreatedAt = now
	blog.UpdatedAt = nil
	_, err := s.c.InsertOne(ctx, blog)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Blog{}, ErrDuplicateSlug
		}
		return models.Blog{}, err
	}
	return blog, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var blog models.Blog
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err == mongo.ErrNoDocuments {
		return models.Blog{}, ErrNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

// GetBySlug finds a post by its slug without touching the view counter.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var blog models.Blog
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&blog)
	if err == mongo.ErrNoDocuments {
		return models.Blog{}, ErrNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

// GetPublishedBySlug finds a published post and increments its view counter
// in the same operation. The returned document reflects the incremented count.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Blog, error) {
	after := options.After
	var blog models.Blog
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"slug": slug, "status": status.Published},
		bson.M{"$inc": bson.M{"views": 1}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&blog)
	if err == mongo.ErrNoDocuments {
		return models.Blog{}, ErrNotFound
	}
	if err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

// Update modifies a post's mutable fields and refreshes UpdatedAt. Locked
// posts reject content updates; unlock first via SetLocked.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, blog models.Blog) error {
	now := time.Now().UTC()
	set := bson.M{
		"updated_at": now,
	}
	if blog.Title != "" {
		set["title"] = blog.Title
		set["title_ci"] = text.Fold(blog.Title)
	}
	if blog.Slug != "" {
		set["slug"] = blog.Slug
	}
	if blog.Description != "" {
		set["description"] = blog.Description
	}
	if blog.Content != "" {
		set["content"] = blog.Content
	}
	if blog.Category != "" {
		set["category"] = blog.Category
	}
	if blog.ImageURL != "" {
		set["image_url"] = blog.ImageURL
	}
	if blog.Status != "" {
		set["status"] = blog.Status
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "locked": bson.M{"$ne": true}}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish missing from locked.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrLocked
	}
	return nil
}

// SetLocked toggles the edit lock on a post.
func (s *Store) SetLocked(ctx context.Context, id primitive.ObjectID, locked bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"locked": locked, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post by ID. Locked posts can still be deleted; the lock
// protects content, not existence.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns posts matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Blog, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var blogs []models.Blog
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Count returns the number of posts matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByStatus groups post counts by status for the dashboard.
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

// TotalViews sums the view counters across all posts.
func (s *Store) TotalViews(ctx context.Context) (int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "views": bson.M{"$sum": "$views"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Views int64 `bson:"views"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Views, nil
}
