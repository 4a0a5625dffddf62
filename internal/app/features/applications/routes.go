// internal/app/features/applications/routes.go
package applications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the application endpoints. Mounted at /api/applications:
//
//	POST   /                public submit (multipart, resume upload)
//	GET    /                review queue (staff)
//	GET    /{id}            single application (staff)
//	PATCH  /{id}/status     review status (staff)
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
