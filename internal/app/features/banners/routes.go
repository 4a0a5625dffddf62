// internal/app/features/banners/routes.go
package banners

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the banner endpoints. Mounted at /api/banners:
//
//	GET    /          public list (active only; staff see all)
//	GET    /{id}      single banner
//	POST   /          create (staff)
//	PUT    /{id}      update (staff)
//	PATCH  /order     batch reorder (staff)
//	DELETE /{id}      delete (staff)
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))
		pr.Post("/", h.Create)
		pr.Put("/{id}", h.Update)
		pr.Patch("/order", h.Reorder)
		pr.Delete("/{id}", h.Delete)
	})

	return r
}
