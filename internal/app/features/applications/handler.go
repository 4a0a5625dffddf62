// internal/app/features/applications/handler.go

// Package applications serves job applications: the public multipart submit
// with resume upload, and the staff review queue.
package applications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	applicationstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/applications"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	careerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/careers"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/mailer"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/paging"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/uploads"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	apps     *applicationstore.Store
	postings *careerstore.Store
	files    storage.Store
	mail     *mailer.Mailer
	audit    *auditlog.Logger
	log      *zap.Logger

	siteName    string
	notifyEmail string
}

type Config struct {
	SiteName    string
	NotifyEmail string // back-office inbox; empty disables notification
}

func NewHandler(apps *applicationstore.Store, postings *careerstore.Store, files storage.Store, mail *mailer.Mailer, audit *auditlog.Logger, logger *zap.Logger, cfg Config) *Handler {
	if cfg.SiteName == "" {
		cfg.SiteName = "Jaikvik Technology"
	}
	return &Handler{
		apps:        apps,
		postings:    postings,
		files:       files,
		mail:        mail,
		audit:       audit,
		log:         logger,
		siteName:    cfg.SiteName,
		notifyEmail: cfg.NotifyEmail,
	}
}

// Create handles POST /api/applications: the public multipart submit. The
// resume goes in under the "resume" field; posting_id is optional so the
// general "work with us" form can post without one.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxDocumentSize + 1<<20); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || email == "" {
		jsonapi.Fail(w, apierr.ValidationFailed, "Name and email are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid email address")
		return
	}

	app := models.JobApplication{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: r.FormValue("message"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var postingTitle string
	if v := r.FormValue("posting_id"); v != "" {
		postingID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			jsonapi.Fail(w, apierr.ValidationFailed, "Invalid posting ID")
			return
		}
		posting, err := h.postings.GetByID(ctx, postingID)
		if err == careerstore.ErrNotFound {
			jsonapi.Fail(w, apierr.NotFound, "Job posting not found")
			return
		}
		if err != nil {
			h.log.Error("posting lookup failed", zap.Error(err))
			jsonapi.Fail(w, apierr.Internal, "Failed to submit application")
			return
		}
		if posting.Status != status.Open {
			jsonapi.Fail(w, apierr.ValidationFailed, "This position is no longer open")
			return
		}
		app.PostingID = &postingID
		postingTitle = posting.Title
	}

	res, ok, err := uploads.SaveDocument(ctx, h.files, r, "resume", "resumes")
	if err != nil {
		jsonapi.Error(w, err)
		return
	}
	if ok {
		app.ResumePath = res.Path
		app.ResumeName = res.FileName
		app.ResumeURL = res.URL
	}

	created, err := h.apps.Create(ctx, app)
	if err != nil {
		h.log.Error("create application failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to submit application")
		return
	}

	h.notify(created, postingTitle)
	jsonapi.Created(w, created)
}

// notify emails the back-office inbox about a new application. Best effort;
// the submission already succeeded.
func (h *Handler) notify(app models.JobApplication, postingTitle string) {
	if h.notifyEmail == "" {
		return
	}
	email := mailer.BuildApplicationEmail(mailer.ApplicationEmailData{
		SiteName:  h.siteName,
		Applicant: app.Name,
		Email:     app.Email,
		Phone:     app.Phone,
		Posting:   postingTitle,
		ResumeURL: app.ResumeURL,
	})
	email.To = h.notifyEmail
	go func() {
		if err := h.mail.Send(email); err != nil {
			h.log.Warn("application notification failed", zap.Error(err))
		}
	}()
}

// List handles GET /api/applications (staff).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}
	if v := query.Get(r, "posting_id"); v != "" {
		postingID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			jsonapi.Fail(w, apierr.ValidationFailed, "Invalid posting ID")
			return
		}
		filter["posting_id"] = postingID
	}

	page := paging.Parse(r)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	apps, err := h.apps.Find(ctx, filter, opts)
	if err != nil {
		h.log.Error("list applications failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list applications")
		return
	}
	total, err := h.apps.Count(ctx, filter)
	if err != nil {
		h.log.Error("count applications failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}
	jsonapi.List(w, apps, len(apps), total)
}

// Get handles GET /api/applications/{id} (staff).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid application ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.apps.GetByID(ctx, id)
	if err == applicationstore.ErrNotFound {
		jsonapi.Fail(w, apierr.NotFound, "Application not found")
		return
	}
	if err != nil {
		h.log.Error("get application failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load application")
		return
	}
	jsonapi.OK(w, app)
}

// SetStatus handles PATCH /api/applications/{id}/status with
// {"status": "reviewed"|"rejected"|"new"} (staff).
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid application ID")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	if !status.IsApplication(in.Status) {
		jsonapi.Fail(w, apierr.ValidationFailed, "Status must be new, reviewed, or rejected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.apps.SetStatus(ctx, id, in.Status); err != nil {
		if err == applicationstore.ErrNotFound {
			jsonapi.Fail(w, apierr.NotFound, "Application not found")
			return
		}
		h.log.Error("set application status failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to update application")
		return
	}

	app, err := h.apps.GetByID(ctx, id)
	if err != nil {
		h.log.Error("reload application failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load application")
		return
	}

	h.audit.Record(r, auditstore.ActionStatusChange, "job_applications", &id, map[string]string{"status": in.Status})
	jsonapi.OK(w, app)
}

// Delete handles DELETE /api/applications/{id} (staff).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid application ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.apps.Delete(ctx, id)
	if err != nil {
		h.log.Error("delete application failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to delete application")
		return
	}
	if n == 0 {
		jsonapi.Fail(w, apierr.NotFound, "Application not found")
		return
	}

	h.audit.Record(r, auditstore.ActionDelete, "job_applications", &id, nil)
	jsonapi.Message(w, "Application deleted")
}
