// internal/app/features/blogs/routes.go
package blogs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the blog endpoints. Mounted at /api/blogs:
//
//	GET    /                public list (published only; staff see all)
//	GET    /{id}            single post
//	GET    /slug/{slug}     public read, bumps the view counter
//	POST   /                create (staff)
//	PUT    /{id}            update (staff)
//	PATCH  /{id}/lock       toggle edit lock (staff)
//	DELETE /{id}            delete (staff)
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.Get)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))
		pr.Post("/", h.Create)
		pr.Put("/{id}", h.Update)
		pr.Patch("/{id}/lock", h.ToggleLock)
		pr.Delete("/{id}", h.Delete)
	})

	return r
}
