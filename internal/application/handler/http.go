// Package handler exposes loan applications over HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/application/domain"
	"grameengo/backend/internal/application/service"
	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/platform/rbac"
	"grameengo/backend/internal/platform/web"
	userdomain "grameengo/backend/internal/user/domain"
)

// Handler serves the /applications endpoints. All routes require auth.
type Handler struct {
	service *service.Service
	guard   *rbac.Guard
}

// NewHandler returns an application Handler.
func NewHandler(svc *service.Service, guard *rbac.Guard) *Handler {
	return &Handler{service: svc, guard: guard}
}

// Mount registers the application routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/applications", h.List)
	r.Get("/applications/{id}", h.Get)
	r.Post("/applications", h.Create)
	r.Patch("/applications/{id}", h.Update)
}

type createRequest struct {
	MFIID            string  `json:"mfi_id"`
	LoanProductID    string  `json:"loan_product_id"`
	BusinessName     string  `json:"business_name"`
	BusinessType     string  `json:"business_type"`
	BusinessAgeYears int     `json:"business_age_years"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	LoanAmount       float64 `json:"loan_amount"`
	LoanPurpose      string  `json:"loan_purpose"`
	TenureMonths     int     `json:"tenure_months"`
}

type updateRequest struct {
	Status          *string `json:"status"`
	OfficerNotes    *string `json:"officer_notes"`
	RejectionReason *string `json:"rejection_reason"`
}

// List returns applications visible to the caller: borrowers their own,
// officers and admins all. Newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	apps, err := h.service.List(r.Context(), user)
	if err != nil {
		slog.Error("list applications", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if apps == nil {
		apps = []*domain.LoanApplication{}
	}
	web.JSON(w, http.StatusOK, apps)
}

// Get returns one application. Owner or elevated role only.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("get application", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if a == nil {
		web.Error(w, http.StatusNotFound, "Application not found")
		return
	}
	if err := h.guard.RequireOwnerOrElevated(r.Context(), user, a.UserID); err != nil {
		writeGuardError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, a)
}

// Create submits a new application for the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req createRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	a, err := h.service.Create(r.Context(), user.ID, service.CreateInput{
		MFIID:            req.MFIID,
		LoanProductID:    req.LoanProductID,
		BusinessName:     req.BusinessName,
		BusinessType:     req.BusinessType,
		BusinessAgeYears: req.BusinessAgeYears,
		MonthlyRevenue:   req.MonthlyRevenue,
		LoanAmount:       req.LoanAmount,
		LoanPurpose:      req.LoanPurpose,
		TenureMonths:     req.TenureMonths,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create application", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	web.JSON(w, http.StatusOK, a)
}

// Update applies an officer's status/notes PATCH. Officer or admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.guard.Require(r.Context(), user, userdomain.RoleOfficer, userdomain.RoleAdmin); err != nil {
		writeGuardError(w, err)
		return
	}
	var req updateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	a, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), user, service.UpdateInput{
		Status:          req.Status,
		OfficerNotes:    req.OfficerNotes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Application not found")
			return
		}
		slog.Error("update application", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	web.JSON(w, http.StatusOK, a)
}

func writeGuardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rbac.ErrUnauthenticated):
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, rbac.ErrForbidden):
		web.Error(w, http.StatusForbidden, "Access denied")
	default:
		slog.Error("authz", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
