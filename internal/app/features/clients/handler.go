// internal/app/features/clients/handler.go

// Package clients serves the client logo/reference API.
package clients

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
	clientstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/clients"
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
	clients *clientstore.Store
	files   storage.Store
	audit   *auditlog.Logger
	log     *zap.Logger
}

func NewHandler(clients *clientstore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{clients: clients, files: files, audit: audit, log: logger}
}

type clientInput struct {
	Name       string `json:"name"`
	LogoURL    string `json:"logo_url"`
	WebsiteURL string `json:"website_url"`
	Status     string `json:"status"`
	Order      int    `json:"order"`
}

func (h *Handler) decodeInput(r *http.Request) (clientInput, error) {
	var in clientInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Name = r.FormValue("name")
		in.WebsiteURL = r.FormValue("website_url")
		in.Status = r.FormValue("status")
		if v := r.FormValue("order"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Order must be a number")
			}
			in.Order = n
		}

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "logo", "clients")
		if err != nil {
			return in, err
		}
		if ok {
			in.LogoURL = res.URL
		}
		return in, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, apierr.New(apierr.ValidationFailed, "Invalid JSON payload")
	}
	return in, nil
}

// List handles GET /api/clients. Public callers see active clients only.
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

	list, err := h.clients.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list clients")
		return
	}
	total, err := h.clients.Count(ctx, filter)
	if err != nil {
		h.log.Error("count clients failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list clients")
		return
	}
	if list == nil {
		list = []models.Client{}
	}
	jsonapi.List(w, list, len(list), total)
}

// Get handles GET /api/clients/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid client ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	client, err := h.clients.GetByID(ctx, id)
	if err == clientstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Client not found")
		return
	}
	if err != nil {
		h.log.Error("get client failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load client")
		return
	}
	if client.Status != status.Active && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Client not found")
		return
	}
	jsonapi.OK(w, client)
}

// Create handles POST /api/clients.
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

	client, err := h.clients.Create(ctx, models.Client{
		Name:       in.Name,
		LogoURL:    in.LogoURL,
		WebsiteURL: in.WebsiteURL,
		Status:     in.Status,
		Order:      in.Order,
	})
	if err != nil {
		h.log.Error("create client failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create client")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "clients", &client.ID, map[string]string{"name": client.Name})
	jsonapi.Created(w, client)
}

// Update handles PUT /api/clients/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid client ID")
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

	err = h.clients.Update(ctx, id, models.Client{
		Name:       in.Name,
		LogoURL:    in.LogoURL,
		WebsiteURL: in.WebsiteURL,
		Status:     in.Status,
		Order:      in.Order,
	})
	if err == clientstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Client not found")
		return
	}
	if err != nil {
		h.log.Error("update client failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update client")
		return
	}

	client, err := h.clients.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload client failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load client")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "clients", &id, nil)
	jsonapi.OK(w, client)
}

// Delete handles DELETE /api/clients/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid client ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.clients.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete client failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete client")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Client not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "clients", &id, nil)
	jsonapi.Message(w, "Client deleted")
}
