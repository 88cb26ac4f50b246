// Package handler serves liveness and readiness endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/platform/web"
)

// Pinger checks database connectivity.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks that the authorization policy still evaluates.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler serves the health endpoints.
type Handler struct {
	db     Pinger
	policy PolicyChecker
}

// NewHandler returns a health Handler. Either dependency may be nil, in
// which case that check is skipped.
func NewHandler(db Pinger, policy PolicyChecker) *Handler {
	return &Handler{db: db, policy: policy}
}

// Mount registers the health routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

// Root answers the API banner used by uptime checks.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "GrameenGo API is running",
	})
}

// Health reports readiness: the database must answer a ping and the
// authorization policy must evaluate.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			web.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy", "reason": "database unreachable",
			})
			return
		}
	}
	if h.policy != nil {
		if err := h.policy.HealthCheck(r.Context()); err != nil {
			web.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy", "reason": "authorization policy failed",
			})
			return
		}
	}
	web.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
