// internal/app/features/team/handler.go

// Package team serves the team member API, including the batch reorder
// endpoint that drives the public team page layout.
package team

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
	teamstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/team"
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
	team  *teamstore.Store
	files storage.Store
	audit *auditlog.Logger
	log   *zap.Logger
}

func NewHandler(team *teamstore.Store, files storage.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{team: team, files: files, audit: audit, log: logger}
}

type memberInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photo_url"`
	LinkedInURL string `json:"linkedin_url"`
	Status      string `json:"status"`
	Order       int    `json:"order"`
}

func (h *Handler) decodeInput(r *http.Request) (memberInput, error) {
	var in memberInput

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(uploads.MaxImageSize + 1<<20); err != nil {
			return in, apierr.New(apierr.ValidationFailed, "Invalid multipart form")
		}
		in.Name = r.FormValue("name")
		in.Designation = r.FormValue("designation")
		in.Bio = r.FormValue("bio")
		in.LinkedInURL = r.FormValue("linkedin_url")
		in.Status = r.FormValue("status")
		if v := r.FormValue("order"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return in, apierr.New(apierr.ValidationFailed, "Order must be a number")
			}
			in.Order = n
		}

		res, ok, err := uploads.SaveImage(r.Context(), h.files, r, "photo", "team")
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

// List handles GET /api/team. Public callers see active members only.
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

	members, err := h.team.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list team failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list team members")
		return
	}
	total, err := h.team.Count(ctx, filter)
	if err != nil {
		h.log.Error("count team failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list team members")
		return
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	jsonapi.List(w, members, len(members), total)
}

// Get handles GET /api/team/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid team member ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	member, err := h.team.GetByID(ctx, id)
	if err == teamstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Team member not found")
		return
	}
	if err != nil {
		h.log.Error("get team member failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load team member")
		return
	}
	if member.Status != status.Active && !authz.IsStaff(r) {
		jsonapi.Fail(w, apierr.NotFound, "Team member not found")
		return
	}
	jsonapi.OK(w, member)
}

// Create handles POST /api/team.
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
	if strings.TrimSpace(in.Designation) == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Designation is required")
		return
	}
	if in.Status != "" && !status.IsToggle(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be active or inactive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.team.Create(ctx, models.TeamMember{
		Name:        in.Name,
		Designation: in.Designation,
		Bio:         in.Bio,
		PhotoURL:    in.PhotoURL,
		LinkedInURL: in.LinkedInURL,
		Status:      in.Status,
		Order:       in.Order,
	})
	if err != nil {
		h.log.Error("create team member failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to create team member")
		return
	}

	h.audit.Record(r, auditstore.ActionCreate, "team_members", &member.ID, map[string]string{"name": member.Name})
	jsonapi.Created(w, member)
}

// Update handles PUT /api/team/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid team member ID")
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

	err = h.team.Update(ctx, id, models.TeamMember{
		Name:        in.Name,
		Designation: in.Designation,
		Bio:         in.Bio,
		PhotoURL:    in.PhotoURL,
		LinkedInURL: in.LinkedInURL,
		Status:      in.Status,
		Order:       in.Order,
	})
	if err == teamstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Team member not found")
		return
	}
	if err != nil {
		h.log.Error("update team member failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update team member")
		return
	}

	member, err := h.team.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload team member failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load team member")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "team_members", &id, nil)
	jsonapi.OK(w, member)
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

// Reorder handles PATCH /api/team/order. The body is an array of
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

	updates := make([]teamstore.OrderUpdate, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			jsonapi.Fail(w, apierr.ValidationFailed, "Invalid team member ID in order list")
			return
		}
		updates = append(updates, teamstore.OrderUpdate{ID: id, Order: item.Order})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.team.Reorder(ctx, updates); err != nil {
		h.log.Error("reorder team failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to reorder team members")
		return
	}

	h.audit.Record(r, auditstore.ActionReorder, "team_members", nil, map[string]string{"count": strconv.Itoa(len(updates))})
	jsonapi.Message(w, "Team members reordered")
}

// Delete handles DELETE /api/team/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid team member ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.team.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete team member failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete team member")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Team member not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "team_members", &id, nil)
	jsonapi.Message(w, "Team member deleted")
}
