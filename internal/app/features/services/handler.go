// internal/app/features/services/handler.go

// Package services serves the service offering API.
package services

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
	servicestore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/services"
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
	services *servicestore.Store
	files    storage.Store
	audit    *auditlog.Logger
	log      *zap.Logger
}

func NewHandler(services *servicestore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{services: services, files: files, audit: audit, log: logger}
}

type serviceInput struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
	IconURL  string `json:"icon_url"`
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
	Order    int    `json:"order"`
}

func (h *Handler) decodeInput(r *http.Request) (serviceInput, error) {
	var in serviceInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Name = r.FormValue("name")
		in.Summary = r.FormValue("summary")
		in.Body = r.FormValue("body")
		in.Status = r.FormValue("status")
		if v := r.FormValue("order"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Order must be a number")
			}
			in.Order = n
		}

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "image", "services")
		if err != nil {
			return in, err
		}
		if ok {
			in.ImageURL = res.URL
		}
		res, ok, err = uploads.SaveImage(r.Context(), h.files, r, "icon", "services")
		if err != nil {
			return in, err
		}
		if ok {
			in.IconURL = res.URL
		}
		return in, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, apierr.New(apierr.ValidationFailed, "Invalid JSON payload")
	}
	return in, nil
}

// List handles GET /api/services. Public callers see active services only.
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

	svcs, err := h.services.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list services failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list services")
		return
	}
	total, err := h.services.Count(ctx, filter)
	if err != nil {
		h.log.Error("count services failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list services")
		return
	}
	if svcs == nil {
		svcs = []models.Service{}
	}
	jsonapi.List(w, svcs, len(svcs), total)
}

// Get handles GET /api/services/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid service ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	svc, err := h.services.GetByID(ctx, id)
	if err == servicestore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Service not found")
		return
	}
	if err != nil {
		h.log.Error("get service failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load service")
		return
	}
	if svc.Status != status.Active && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Service not found")
		return
	}
	jsonapi.OK(w, svc)
}

// Create handles POST /api/services.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Name is required")
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	svc, err := h.services.Create(ctx, models.Service{
		Name:     in.Name,
		Slug:     slugify.Make(in.Name),
		Summary:  in.Summary,
		Body:     htmlsanitize.Sanitize(in.Body),
		IconURL:  in.IconURL,
		ImageURL: in.ImageURL,
		Status:   in.Status,
		Order:    in.Order,
	})
	if err == servicestore.ErrDuplicateSlug {
		jsonapi.Fail(w, apierr.Conflict, "A service with this name already exists")
		return
	}
	if err != nil {
		h.log.Error("create service failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create service")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "services", &svc.ID, map[string]string{"name": svc.Name})
	jsonapi.Created(w, svc)
}

// Update handles PUT /api/services/{id}. The slug is recomputed only when
// the name changes.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid service ID")
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

	update := models.Service{
		Name:     in.Name,
		Summary:  in.Summary,
		Body:     htmlsanitize.Sanitize(in.Body),
		IconURL:  in.IconURL,
		ImageURL: in.ImageURL,
		Status:   in.Status,
		Order:    in.Order,
	}
	if in.Name != "" {
		update.Slug = slugify.Make(in.Name)
	}

	err = h.services.Update(ctx, id, update)
	switch err {
	case nil:
	case servicestore.ErrNotFound:
		jsonapi.Fail(w, apierr.NotFound, "Service not found")
		return
	case servicestore.ErrDuplicateSlug:
		jsonapi.Fail(w, apierr.Conflict, "A service with this name already exists")
		return
	default:
		h.log.Error("update service failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update service")
		return
	}

	svc, err := h.services.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload service failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load service")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "services", &id, nil)
	jsonapi.OK(w, svc)
}

// Delete handles DELETE /api/services/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid service ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.services.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete service failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete service")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Service not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "services", &id, nil)
	jsonapi.Message(w, "Service deleted")
}
