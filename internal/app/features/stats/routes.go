// internal/app/features/stats/routes.go
package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the stats endpoints. Mounted at /api/stats; admin only.
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()
	r.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))

	r.Get("/dashboard", h.Dashboard)

	return r
}
