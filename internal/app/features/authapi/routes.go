// internal/app/features/authapi/routes.go
package authapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
)

// Routes wires the auth endpoints. Mounted at /api/auth:
//
//	POST /login            sign in, returns a bearer token
//	POST /forgot-password  email a reset code
//	POST /reset-password   redeem a reset code
//	GET  /me               current signed-in user
func Routes(h *Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn)
		pr.Get("/me", h.Me)
	})

	return r
}
