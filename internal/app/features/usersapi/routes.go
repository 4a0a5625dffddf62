// internal/app/features/usersapi/routes.go
package usersapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// Routes wires the account management endpoints. Mounted at /api/users;
// every route requires the admin role.
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()
	r.Use(gate.RequireSignedIn, gate.RequireRole(models.RoleAdmin))

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
