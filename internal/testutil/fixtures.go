// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/slugify"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// HashPassword bcrypt-hashes a plaintext password with the test-friendly
// minimum cost.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

// CreateUser creates a test account with the given role and password.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, password string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: HashPassword(f.t, password),
		Role:         role,
		Status:       status.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, password)
}

// CreateEditor creates a test editor account.
func (f *Fixtures) CreateEditor(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleEditor, password)
}

// CreateBlog creates a published test post.
func (f *Fixtures) CreateBlog(ctx context.Context, title string) models.Blog {
	f.t.Helper()

	blog := models.Blog{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Slug:      slugify.Make(title),
		Content:   "<p>Test content.</p>",
		Status:    status.Published,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("blogs").InsertOne(ctx, blog); err != nil {
		f.t.Fatalf("failed to create test blog: %v", err)
	}
	return blog
}

// CreateBanner creates an active test banner at the given order.
func (f *Fixtures) CreateBanner(ctx context.Context, title string, order int) models.Banner {
	f.t.Helper()

	banner := models.Banner{
		ID:        primitive.NewObjectID(),
		Title:     title,
		ImageURL:  "http://localhost/uploads/banners/test.jpg",
		Platform:  models.PlatformWeb,
		Status:    status.Active,
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("banners").InsertOne(ctx, banner); err != nil {
		f.t.Fatalf("failed to create test banner: %v", err)
	}
	return banner
}

// CreateService creates an active test service.
func (f *Fixtures) CreateService(ctx context.Context, name string) models.Service {
	f.t.Helper()

	svc := models.Service{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Slug:      slugify.Make(name),
		Status:    status.Active,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("services").InsertOne(ctx, svc); err != nil {
		f.t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

// CreateTeamMember creates an active test member at the given order.
func (f *Fixtures) CreateTeamMember(ctx context.Context, name string, order int) models.TeamMember {
	f.t.Helper()

	member := models.TeamMember{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Designation: "Engineer",
		Status:      status.Active,
		Order:       order,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("team_members").InsertOne(ctx, member); err != nil {
		f.t.Fatalf("failed to create test team member: %v", err)
	}
	return member
}

// CreateJobPosting creates an open test posting.
func (f *Fixtures) CreateJobPosting(ctx context.Context, title string) models.JobPosting {
	f.t.Helper()

	posting := models.JobPosting{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test role description.",
		Status:      status.Open,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("job_postings").InsertOne(ctx, posting); err != nil {
		f.t.Fatalf("failed to create test job posting: %v", err)
	}
	return posting
}

// CreateEnquiry creates a new test enquiry.
func (f *Fixtures) CreateEnquiry(ctx context.Context, name, email string) models.Enquiry {
	f.t.Helper()

	enq := models.Enquiry{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Message:   "Test enquiry message.",
		Status:    status.New,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("enquiries").InsertOne(ctx, enq); err != nil {
		f.t.Fatalf("failed to create test enquiry: %v", err)
	}
	return enq
}

// CreateTestimonial creates an active test quote at the given order.
func (f *Fixtures) CreateTestimonial(ctx context.Context, author string, order int) models.Testimonial {
	f.t.Helper()

	tm := models.Testimonial{
		ID:        primitive.NewObjectID(),
		Author:    author,
		Quote:     "Great work, delivered on time.",
		Rating:    5,
		Status:    status.Active,
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("testimonials").InsertOne(ctx, tm); err != nil {
		f.t.Fatalf("failed to create test testimonial: %v", err)
	}
	return tm
}

// CreateClient creates an active test client.
func (f *Fixtures) CreateClient(ctx context.Context, name string, order int) models.Client {
	f.t.Helper()

	client := models.Client{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    status.Active,
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("clients").InsertOne(ctx, client); err != nil {
		f.t.Fatalf("failed to create test client: %v", err)
	}
	return client
}
