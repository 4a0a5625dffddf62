// internal/app/features/sitepages/handler.go

// Package sitepages serves the singleton site configuration documents:
// footer, navbar, hero, and the about page. Reads are public; saves are
// admin-only and overwrite the whole document.
package sitepages

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/store/singleton"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/htmlsanitize"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

type Handler struct {
	footer *singleton.Store[*models.Footer]
	navbar *singleton.Store[*models.Navbar]
	hero   *singleton.Store[*models.Hero]
	about  *singleton.Store[*models.About]
	audit  *auditlog.Logger
	log    *zap.Logger
}

func NewHandler(footer *singleton.Store[*models.Footer], navbar *singleton.Store[*models.Navbar], hero *singleton.Store[*models.Hero], about *singleton.Store[*models.About], audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{footer: footer, navbar: navbar, hero: hero, about: about, audit: audit, log: logger}
}

// getSingleton serves a singleton read. A missing document comes back as an
// empty object so public pages can render defaults without a 404 branch.
func getSingleton[T singleton.Document](h *Handler, store *singleton.Store[T], name string, w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	doc, found, err := store.Get(ctx)
	if err != nil {
		h.log.Error("get singleton failed", zap.String("page", name), zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load "+name)
		return
	}
	if !found {
		jsonapi.OK(w, struct{}{})
		return
	}
	jsonapi.OK(w, doc)
}

// saveSingleton decodes the full replacement document and saves it.
func saveSingleton[T singleton.Document](h *Handler, store *singleton.Store[T], name string, doc T, w http.ResponseWriter, r *http.Request) {
	if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := store.Save(ctx, doc)
	if err != nil {
		h.log.Error("save singleton failed", zap.String("page", name), zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to save "+name)
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, name, nil, nil)
	jsonapi.OK(w, saved)
}

func (h *Handler) GetFooter(w http.ResponseWriter, r *http.Request) {
	getSingleton(h, h.footer, "footer", w, r)
}

func (h *Handler) SaveFooter(w http.ResponseWriter, r *http.Request) {
	saveSingleton(h, h.footer, "footer", &models.Footer{}, w, r)
}

func (h *Handler) GetNavbar(w http.ResponseWriter, r *http.Request) {
	getSingleton(h, h.navbar, "navbar", w, r)
}

func (h *Handler) SaveNavbar(w http.ResponseWriter, r *http.Request) {
	saveSingleton(h, h.navbar, "navbar", &models.Navbar{}, w, r)
}

func (h *Handler) GetHero(w http.ResponseWriter, r *http.Request) {
	getSingleton(h, h.hero, "hero", w, r)
}

func (h *Handler) SaveHero(w http.ResponseWriter, r *http.Request) {
	saveSingleton(h, h.hero, "hero", &models.Hero{}, w, r)
}

func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	getSingleton(h, h.about, "about", w, r)
}

// SaveAbout sanitizes the rich-text blocks before the overwrite.
func (h *Handler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	var about models.About
	if err := json.NewDecoder(r.Body).Decode(&about); err != nil {
		jsonapi.Fail(w, apierr.ValidationFailed, "Invalid JSON payload")
		return
	}
	about.Body = htmlsanitize.Sanitize(about.Body)
	about.Mission.Body = htmlsanitize.Sanitize(about.Mission.Body)
	about.Vision.Body = htmlsanitize.Sanitize(about.Vision.Body)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.about.Save(ctx, &about)
	if err != nil {
		h.log.Error("save singleton failed", zap.String("page", "about"), zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to save about")
		return
	}

	h.audit.Record(r, auditstore.ActionUpdate, "about", nil, nil)
	jsonapi.OK(w, saved)
}
