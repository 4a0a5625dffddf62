// internal/app/features/careers/handler.go

// Package careers serves the job posting API behind the public careers page.
package careers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	careerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/careers"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/authz"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	postings *careerstore.Store
	audit    *auditlog.Logger
	log      *zap.Logger
}

func NewHandler(postings *careerstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{postings: postings, audit: audit, log: logger}
}

type postingInput struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// List handles GET /api/careers. Public callers see open postings only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if authz.IsStaff(r) {
		if s := query.Get(r, "status"); s != "" {
			filter["status"] = s
		}
	} else {
		filter["status"] = status.Open
	}
	if d := query.Get(r, "department"); d != "" {
		filter["department"] = d
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	postings, err := h.postings.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list job postings failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list job postings")
		return
	}
	total, err := h.postings.Count(ctx, filter)
	if err != nil {
		h.log.Error("count job postings failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list job postings")
		return
	}
	if postings == nil {
		postings = []models.JobPosting{}
	}
	jsonapi.List(w, postings, len(postings), total)
}

// Get handles GET /api/careers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid job posting ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	posting, err := h.postings.GetByID(ctx, id)
	if err == careerstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Job posting not found")
		return
	}
	if err != nil {
		h.log.Error("get job posting failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load job posting")
		return
	}
	if posting.Status != status.Open && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Job posting not found")
		return
	}
	jsonapi.OK(w, posting)
}

// Create handles POST /api/careers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in postingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Title is required")
		return
	}
	if strings.TrimSpace(in.Description) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Description is required")
		return
	}
	if in.Status != "" && !status.IsPosting(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be open or closed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posting, err := h.postings.Create(ctx, models.JobPosting{
		Title:       in.Title,
		Department:  in.Department,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Status:      in.Status,
	})
	if err != nil {
		h.log.Error("create job posting failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create job posting")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "job_postings", &posting.ID, map[string]string{"title": posting.Title})
	jsonapi.Created(w, posting)
}

// Update handles PUT /api/careers/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid job posting ID")
		return
	}

	var in postingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if in.Status != "" && !status.IsPosting(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be open or closed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.postings.Update(ctx, id, models.JobPosting{
		Title:       in.Title,
		Department:  in.Department,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Status:      in.Status,
	})
	if err == careerstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Job posting not found")
		return
	}
	if err != nil {
		h.log.Error("update job posting failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update job posting")
		return
	}

	posting, err := h.postings.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload job posting failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load job posting")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "job_postings", &id, nil)
	jsonapi.OK(w, posting)
}

// Delete handles DELETE /api/careers/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid job posting ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.postings.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete job posting failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete job posting")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Job posting not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "job_postings", &id, nil)
	jsonapi.Message(w, "Job posting deleted")
}
