// Package handler exposes portfolio analytics to officers and admins.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/analytics/repository"
	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/platform/rbac"
	"grameengo/backend/internal/platform/web"
	userdomain "grameengo/backend/internal/user/domain"
)

const trendBuckets = 12

// Handler serves the /analytics endpoints. Officer and admin only.
type Handler struct {
	repo  repository.Repository
	guard *rbac.Guard
}

// NewHandler returns an analytics Handler.
func NewHandler(repo repository.Repository, guard *rbac.Guard) *Handler {
	return &Handler{repo: repo, guard: guard}
}

// Mount registers the analytics routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/analytics/stats", h.Stats)
	r.Get("/analytics/trends", h.Trends)
}

// Stats returns portfolio totals.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		slog.Error("analytics stats", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	web.JSON(w, http.StatusOK, stats)
}

// Trends returns monthly application volume.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	trends, err := h.repo.Trends(r.Context(), trendBuckets)
	if err != nil {
		slog.Error("analytics trends", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if trends == nil {
		trends = []*repository.TrendBucket{}
	}
	web.JSON(w, http.StatusOK, trends)
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	user := middleware.UserFrom(r.Context())
	err := h.guard.Require(r.Context(), user, userdomain.RoleOfficer, userdomain.RoleAdmin)
	switch {
	case err == nil:
		return true
	case errors.Is(err, rbac.ErrUnauthenticated):
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, rbac.ErrForbidden):
		web.Error(w, http.StatusForbidden, "Access denied")
	default:
		slog.Error("authz", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
	}
	return false
}
