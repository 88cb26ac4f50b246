// Package handler exposes notifications over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/notification/domain"
	"grameengo/backend/internal/notification/service"
	"grameengo/backend/internal/platform/web"
)

// Handler serves the /notifications endpoints. All routes require auth.
type Handler struct {
	service *service.Service
}

// NewHandler returns a notification Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// Mount registers the notification routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/notifications", h.List)
	r.Patch("/notifications/{id}/read", h.MarkRead)
}

// List returns the caller's newest notifications.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	notifications, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list notifications", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	web.JSON(w, http.StatusOK, notifications)
}

// MarkRead marks one of the caller's notifications as read. A miss (unknown
// id or another user's row) still answers 200; the operation is idempotent.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		slog.Error("mark notification read", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
