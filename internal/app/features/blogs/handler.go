// internal/app/features/blogs/handler.go

// Package blogs serves the blog post API: staff CRUD, the public slug read
// that feeds the view counter, and the edit lock toggle.
package blogs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	blogstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/blogs"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/authz"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/htmlsanitize"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/slugify"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/uploads"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	blogs *blogstore.Store
	files storage.Store
	audit *auditlog.Logger
	log   *zap.Logger
}

func NewHandler(blogs *blogstore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{blogs: blogs, files: files, audit: audit, log: logger}
}

type blogInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ImageURL    string `json:"image_url"`
}

// decodeInput reads a blog payload from JSON or multipart form. Multipart
// requests may carry an "image" file which is stored and becomes ImageURL.
func (h *Handler) decodeInput(r *http.Request) (blogInput, error) {
	var in blogInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Title = r.FormValue("title")
		in.Description = r.FormValue("description")
		in.Content = r.FormValue("content")
		in.Category = r.FormValue("category")
		in.Status = r.FormValue("status")

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "image", "blogs")
		if err != nil {
			return in, err
		}
		if ok {
			in.ImageURL = res.URL
		}
		return in, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, apierr.New(apierr.ValidationFailed, "Invalid JSON payload")
	}
	return in, nil
}

func validStatus(s string) bool {
	return s == "" || status.IsPublication(s)
}

// List handles GET /api/blogs. Public callers only see published posts;
// staff may filter any status via ?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if authz.IsStaff(r) {
		if s := query.Get(r, "status"); s != "" {
			filter["status"] = s
		}
	} else {
		filter["status"] = status.Published
	}
	if c := query.Get(r, "category"); c != "" {
		filter["category"] = c
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	posts, err := h.blogs.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list blogs failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list blogs")
		return
	}
	total, err := h.blogs.Count(ctx, filter)
	if err != nil {
		h.log.Error("count blogs failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list blogs")
		return
	}
	if posts == nil {
		posts = []models.Blog{}
	}
	jsonapi.List(w, posts, len(posts), total)
}

// Get handles GET /api/blogs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid blog ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	blog, err := h.blogs.GetByID(ctx, id)
	if err == blogstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	}
	if err != nil {
		h.log.Error("get blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load blog")
		return
	}
	if blog.Status != status.Published && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	}
	jsonapi.OK(w, blog)
}

// GetBySlug handles GET /api/blogs/slug/{slug}: the public read path. Each
// hit increments the post's view counter.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	blog, err := h.blogs.GetPublishedBySlug(ctx, slug)
	if err == blogstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	}
	if err != nil {
		h.log.Error("get blog by slug failed", zap.String("slug", slug), zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load blog")
		return
	}
	jsonapi.OK(w, blog)
}

// Create handles POST /api/blogs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Title is required")
		return
	}
	if !validStatus(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be draft, published, or archived")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	blog, err := h.blogs.Create(ctx, models.Blog{
		Title:       in.Title,
		Slug:        slugify.Make(in.Title),
		Description: in.Description,
		Content:     htmlsanitize.Sanitize(in.Content),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
	})
	if err == blogstore.ErrDuplicateSlug {
		jsonapi.Fail(w, apierr.Conflict, "A blog with this title already exists")
		return
	}
	if err != nil {
		h.log.Error("create blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create blog")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "blogs", &blog.ID, map[string]string{"title": blog.Title})
	jsonapi.Created(w, blog)
}

// Update handles PUT /api/blogs/{id}: a partial update. The slug is
// recomputed only when the title changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid blog ID")
		return
	}

	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if !validStatus(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be draft, published, or archived")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	update := models.Blog{
		Title:       in.Title,
		Description: in.Description,
		Content:     htmlsanitize.Sanitize(in.Content),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
	}
	if in.Title != "" {
		update.Slug = slugify.Make(in.Title)
	}

	err = h.blogs.Update(ctx, id, update)
	switch err {
	case nil:
	case blogstore.ErrNotFound:
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	case blogstore.ErrLocked:
		jsonapi.Fail(w, apierr.Conflict, "Blog is locked; unlock it before editing")
		return
	case blogstore.ErrDuplicateSlug:
		jsonapi.Fail(w, apierr.Conflict, "A blog with this title already exists")
		return
	default:
		h.log.Error("update blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update blog")
		return
	}

	blog, err := h.blogs.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load blog")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "blogs", &id, nil)
	jsonapi.OK(w, blog)
}

// ToggleLock handles PATCH /api/blogs/{id}/lock. With no body the lock flips;
// an explicit {"locked": bool} body sets it.
func (h *Handler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid blog ID")
		return
	}

	var in struct {
		Locked *bool `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && err != io.EOF {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	blog, err := h.blogs.GetByID(ctx, id)
	if err == blogstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	}
	if err != nil {
		h.log.Error("get blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update lock")
		return
	}

	locked := !blog.Locked
	if in.Locked != nil {
		locked = *in.Locked
	}

	if err := h.blogs.SetLocked(ctx, id, locked); err != nil {
		h.log.Error("toggle blog lock failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update lock")
		return
	}

	action := auditstore.ActionUnlock
	if locked {
		action = auditstore.ActionLock
	}
	h.audit.Record(r, action, "blogs", &id, nil)

	blog, err = h.blogs.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load blog")
		return
	}
	jsonapi.OK(w, blog)
}

// Delete handles DELETE /api/blogs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid blog ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.blogs.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete blog failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete blog")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Blog not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "blogs", &id, nil)
	jsonapi.Message(w, "Blog deleted")
}
