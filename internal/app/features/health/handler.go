// internal/app/features/health/handler.go

// Package health serves the liveness endpoint. The response is static; it
// reports that the process is up, not that its dependencies are.
package health

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Serve handles GET /health with a static 200 payload.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
