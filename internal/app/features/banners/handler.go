// internal/app/features/banners/handler.go

// Package banners serves the carousel banner API, including the batch
// reorder endpoint.
package banners

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
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
	bannerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/banners"
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
	banners *bannerstore.Store
	files   storage.Store
	audit   *auditlog.Logger
	log     *zap.Logger
}

func NewHandler(banners *bannerstore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{banners: banners, files: files, audit: audit, log: logger}
}

type bannerInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
	Order    int    `json:"order"`
}

func (h *Handler) decodeInput(r *http.Request) (bannerInput, error) {
	var in bannerInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Title = r.FormValue("title")
		in.Subtitle = r.FormValue("subtitle")
		in.LinkURL = r.FormValue("link_url")
		in.Platform = r.FormValue("platform")
		in.Status = r.FormValue("status")
		if v := r.FormValue("order"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Order must be a number")
			}
			in.Order = n
		}

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "image", "banners")
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

// List handles GET /api/banners. Public callers see active banners only;
// ?platform= filters web/mobile slides (a "both" banner matches either).
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
	if p := query.Get(r, "platform"); p != "" {
		filter["platform"] = bson.M{"$in": []string{p, models.PlatformBoth}}
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	banners, err := h.banners.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list banners failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list banners")
		return
	}
	total, err := h.banners.Count(ctx, filter)
	if err != nil {
		h.log.Error("count banners failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list banners")
		return
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	jsonapi.List(w, banners, len(banners), total)
}

// Get handles GET /api/banners/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid banner ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	banner, err := h.banners.GetByID(ctx, id)
	if err == bannerstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Banner not found")
		return
	}
	if err != nil {
		h.log.Error("get banner failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load banner")
		return
	}
	if banner.Status != status.Active && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Banner not found")
		return
	}
	jsonapi.OK(w, banner)
}

// Create handles POST /api/banners.
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
	if in.Platform != "" && !models.IsValidPlatform(in.Platform) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Platform must be web, mobile, or both")
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	banner, err := h.banners.Create(ctx, models.Banner{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImageURL: in.ImageURL,
		LinkURL:  in.LinkURL,
		Platform: in.Platform,
		Status:   in.Status,
		Order:    in.Order,
	})
	if err != nil {
		h.log.Error("create banner failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create banner")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "banners", &banner.ID, map[string]string{"title": banner.Title})
	jsonapi.Created(w, banner)
}

// Update handles PUT /api/banners/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid banner ID")
		return
	}

	in, err := h.decodeInput(r)
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if in.Platform != "" && !models.IsValidPlatform(in.Platform) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Platform must be web, mobile, or both")
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.banners.Update(ctx, id, models.Banner{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImageURL: in.ImageURL,
		LinkURL:  in.LinkURL,
		Platform: in.Platform,
		Status:   in.Status,
		Order:    in.Order,
	})
	if err == bannerstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Banner not found")
		return
	}
	if err != nil {
		h.log.Error("update banner failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update banner")
		return
	}

	banner, err := h.banners.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload banner failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load banner")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "banners", &id, nil)
	jsonapi.OK(w, banner)
}

type orderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// decodeOrderList accepts either a bare [{"id","order"}] array or the same
// array wrapped as {"order": [...]}.
func decodeOrderList(r *http.Request) ([]orderItem, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var items []orderItem
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var in struct {
		Order []orderItem `json:"order"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, err
	}
	return in.Order, nil
}

// Reorder handles PATCH /api/banners/order. The body is an array of
// {"id", "order"} pairs, bare or under an "order" key.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	items, err := decodeOrderList(r)
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if len(items) == 0 {
		jsonapi.Fail(w, apierr.ValidationFailed, "Order list is required")
		return
	}

	updates := make([]bannerstore.OrderUpdate, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			jsonapi.Fail(w, apierr.ValidationFailed, "Invalid banner ID in order list")
			return
		}
		updates = append(updates, bannerstore.OrderUpdate{ID: id, Order: item.Order})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.banners.Reorder(ctx, updates); err != nil {
		h.log.Error("reorder banners failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to reorder banners")
		return
	}

	h.audit.Record(r, auditstore.ActionReorder, "banners", nil, map[string]string{"count": strconv.Itoa(len(updates))})
	jsonapi.Message(w, "Banners reordered")
}

// Delete handles DELETE /api/banners/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid banner ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.banners.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete banner failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete banner")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Banner not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "banners", &id, nil)
	jsonapi.Message(w, "Banner deleted")
}
