// internal/app/features/careers/routes.go
package careers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the job posting endpoints. Mounted at /api/careers.
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))
		pr.Post("/", h.Create)
		pr.Put("/{id}", h.Update)
		pr.Delete("/{id}", h.Delete)
	})

	return r
}
