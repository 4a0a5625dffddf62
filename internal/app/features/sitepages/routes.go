// internal/app/features/sitepages/routes.go
package sitepages

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the singleton page endpoints. Mounted at /api:
//
//	GET /footer, /navbar, /hero, /about   public reads
//	PUT /footer, /navbar, /hero, /about   full-document save (admin)
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Get("/footer", h.GetFooter)
	r.Get("/navbar", h.GetNavbar)
	r.Get("/hero", h.GetHero)
	r.Get("/about", h.GetAbout)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))
		pr.Put("/footer", h.SaveFooter)
		pr.Put("/navbar", h.SaveNavbar)
		pr.Put("/hero", h.SaveHero)
		pr.Put("/about", h.SaveAbout)
	})

	return r
}
