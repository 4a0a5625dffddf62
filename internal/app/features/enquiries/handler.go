// internal/app/features/enquiries/handler.go

// Package enquiries serves the contact form: public JSON submit plus the
// staff inbox with read/responded triage.
package enquiries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	enquirystore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/enquiries"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	enquiries *enquirystore.Store
	audit     *auditlog.Logger
	log       *zap.Logger
}

func NewHandler(enquiries *enquirystore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{enquiries: enquiries, audit: audit, log: logger}
}

// Create handles POST /api/enquiries: the public contact form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Subject   string `json:"subject"`
		Message   string `json:"message"`
		ServiceID string `json:"service_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || strings.TrimSpace(in.Message) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Name, email, and message are required")
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid email address")
		return
	}

	enq := models.Enquiry{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   strings.TrimSpace(in.Phone),
		Subject: in.Subject,
		Message: in.Message,
	}
	if in.ServiceID != "" {
		serviceID, err := primitive.ObjectIDFromHex(in.ServiceID)
		if err != nil {
			jsonapi.Fail(w, apierr.ValidationFailed, "Invalid service ID")
			return
		}
		enq.ServiceID = &serviceID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.enquiries.Create(ctx, enq)
	if err != nil {
		h.log.Error("create enquiry failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to submit enquiry")
		return
	}
	jsonapi.Created(w, created)
}

// List handles GET /api/enquiries (staff).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	list, err := h.enquiries.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list enquiries failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list enquiries")
		return
	}
	total, err := h.enquiries.Count(ctx, filter)
	if err != nil {
		h.log.Error("count enquiries failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list enquiries")
		return
	}
	if list == nil {
		list = []models.Enquiry{}
	}
	jsonapi.List(w, list, len(list), total)
}

// Get handles GET /api/enquiries/{id} (staff).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid enquiry ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	enq, err := h.enquiries.GetByID(ctx, id)
	if err == enquirystore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Enquiry not found")
		return
	}
	if err != nil {
		h.log.Error("get enquiry failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load enquiry")
		return
	}
	jsonapi.OK(w, enq)
}

// SetStatus handles PATCH /api/enquiries/{id}/status with
// {"status": "new"|"read"|"responded"} (staff).
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid enquiry ID")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if !status.IsInbox(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be new, read, or responded")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.enquiries.SetStatus(ctx, id, in.Status); err != nil {
		if err == enquirystore.ErrNotFound {
			jsonapi.Fail(w, apierr.NotFound, "Enquiry not found")
			return
		}
		h.log.Error("set enquiry status failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update enquiry")
		return
	}

	enq, err := h.enquiries.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload enquiry failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load enquiry")
		return
	}

	h.audit.Record(r, auditstore.ActionStatusChange, "enquiries", &id, map[string]string{"status": in.Status})
	jsonapi.OK(w, enq)
}

// Delete handles DELETE /api/enquiries/{id} (staff).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid enquiry ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.enquiries.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete enquiry failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete enquiry")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Enquiry not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "enquiries", &id, nil)
	jsonapi.Message(w, "Enquiry deleted")
}
