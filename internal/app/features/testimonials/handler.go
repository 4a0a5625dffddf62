// internal/app/features/testimonials/handler.go

// Package testimonials serves the client testimonial API.
package testimonials

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	testimonialstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/testimonials"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/authz"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/uploads"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	testimonials *testimonialstore.Store
	files        storage.Store
	audit        *auditlog.Logger
	log          *zap.Logger
}

func NewHandler(testimonials *testimonialstore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{testimonials: testimonials, files: files, audit: audit, log: logger}
}

type testimonialInput struct {
	Author   string `json:"author"`
	Company  string `json:"company"`
	Quote    string `json:"quote"`
	Rating   int    `json:"rating"`
	PhotoURL string `json:"photo_url"`
	Status   string `json:"status"`
	Order    int    `json:"order"`
}

func (h *Handler) decodeInput(r *http.Request) (testimonialInput, error) {
	var in testimonialInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Author = r.FormValue("author")
		in.Company = r.FormValue("company")
		in.Quote = r.FormValue("quote")
		in.Status = r.FormValue("status")
		if v := r.FormValue("rating"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Rating must be a number")
			}
			in.Rating = n
		}
		if v := r.FormValue("order"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Order must be a number")
			}
			in.Order = n
		}

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "photo", "testimonials")
		if err != nil {
			return in, err
		}
		if ok {
			in.PhotoURL = res.URL
		}
		return in, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, apierr.New(apierr.ValidationFailed, "Invalid JSON payload")
	}
	return in, nil
}

// List handles GET /api/testimonials. Public callers see active quotes only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if authz.IsStaff(r) {
		if s := query.Get(r, "status"); s != "" {
			filter["status"] = s
		}
	} else {
		filter["status"] = status.Active
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	quotes, err := h.testimonials.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list testimonials failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list testimonials")
		return
	}
	total, err := h.testimonials.Count(ctx, filter)
	if err != nil {
		h.log.Error("count testimonials failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list testimonials")
		return
	}
	if quotes == nil {
		quotes = []models.Testimonial{}
	}
	jsonapi.List(w, quotes, len(quotes), total)
}

// Get handles GET /api/testimonials/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid testimonial ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tm, err := h.testimonials.GetByID(ctx, id)
	if err == testimonialstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Testimonial not found")
		return
	}
	if err != nil {
		h.log.Error("get testimonial failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load testimonial")
		return
	}
	if tm.Status != status.Active && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Testimonial not found")
		return
	}
	jsonapi.OK(w, tm)
}

// Create handles POST /api/testimonials.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if strings.TrimSpace(in.Author) == "" || strings.TrimSpace(in.Quote) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Author and quote are required")
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tm, err := h.testimonials.Create(ctx, models.Testimonial{
		Author:   in.Author,
		Company:  in.Company,
		Quote:    in.Quote,
		Rating:   in.Rating,
		PhotoURL: in.PhotoURL,
		Status:   in.Status,
		Order:    in.Order,
	})
	if err != nil {
		jsonapi.Error(w, err)
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "testimonials", &tm.ID, map[string]string{"author": tm.Author})
	jsonapi.Created(w, tm)
}

// Update handles PUT /api/testimonials/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid testimonial ID")
		return
	}

	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.testimonials.Update(ctx, id, models.Testimonial{
		Author:   in.Author,
		Company:  in.Company,
		Quote:    in.Quote,
		Rating:   in.Rating,
		PhotoURL: in.PhotoURL,
		Status:   in.Status,
		Order:    in.Order,
	})
	if err == testimonialstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Testimonial not found")
		return
	}
	if err != nil {
		jsonapi.Error(w, err)
		return
	}

	tm, err := h.testimonials.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload testimonial failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load testimonial")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "testimonials", &id, nil)
	jsonapi.OK(w, tm)
}

// Delete handles DELETE /api/testimonials/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid testimonial ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.testimonials.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete testimonial failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete testimonial")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Testimonial not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "testimonials", &id, nil)
	jsonapi.Message(w, "Testimonial deleted")
}
