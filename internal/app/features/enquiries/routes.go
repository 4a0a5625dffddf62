// internal/app/features/enquiries/routes.go
package enquiries

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the enquiry endpoints. Mounted at /api/enquiries:
//
//	POST   /                public contact form
//	GET    /                inbox (staff)
//	GET    /{id}            single enquiry (staff)
//	PATCH  /{id}/status     triage status (staff)
//	DELETE /{id}            delete (staff)
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))
		pr.Get("/", h.List)
		pr.Get("/{id}", h.Get)
		pr.Patch("/{id}/status", h.SetStatus)
		pr.Delete("/{id}", h.Delete)
	})

	return r
}
