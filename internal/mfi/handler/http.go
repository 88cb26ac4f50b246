// Package handler exposes the MFI catalog over HTTP: institution listing,
// admin-only creation, and loan-product browsing.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"grameengo/backend/internal/mfi/domain"
	"grameengo/backend/internal/mfi/repository"
	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/platform/rbac"
	"grameengo/backend/internal/platform/web"
	userdomain "grameengo/backend/internal/user/domain"
)

const listLimit = 100

// Handler serves the /mfis and /loan-products endpoints.
type Handler struct {
	mfis     repository.Repository
	products repository.ProductRepository
	guard    *rbac.Guard
}

// NewHandler returns an MFI catalog Handler.
func NewHandler(mfis repository.Repository, products repository.ProductRepository, guard *rbac.Guard) *Handler {
	return &Handler{mfis: mfis, products: products, guard: guard}
}

// Mount registers the catalog routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/mfis", h.List)
	r.Get("/mfis/{id}", h.Get)
	r.Post("/mfis", h.Create)
	r.Get("/loan-products", h.ListProducts)
}

// List returns the MFI catalog. Public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mfis, err := h.mfis.List(r.Context(), listLimit)
	if err != nil {
		slog.Error("list mfis", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if mfis == nil {
		mfis = []*domain.MFI{}
	}
	web.JSON(w, http.StatusOK, mfis)
}

// Get returns a single MFI. Public.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.mfis.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("get mfi", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if m == nil {
		web.Error(w, http.StatusNotFound, "MFI not found")
		return
	}
	web.JSON(w, http.StatusOK, m)
}

type createMFIRequest struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	MinLoanAmount      float64  `json:"min_loan_amount"`
	MaxLoanAmount      float64  `json:"max_loan_amount"`
	InterestRate       float64  `json:"interest_rate"`
	ProcessingTimeDays int      `json:"processing_time_days"`
	Requirements       []string `json:"requirements"`
	CollateralRequired bool     `json:"collateral_required"`
	Website            string   `json:"website"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	LogoURL            string   `json:"logo_url"`
}

// Create adds an MFI to the catalog. Admin only. Unknown JSON fields are
// ignored rather than stored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.guard.Require(r.Context(), user, userdomain.RoleAdmin); err != nil {
		writeGuardError(w, err, "Only admins can create MFIs")
		return
	}
	var req createMFIRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	m := &domain.MFI{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		Description:        req.Description,
		MinLoanAmount:      req.MinLoanAmount,
		MaxLoanAmount:      req.MaxLoanAmount,
		InterestRate:       req.InterestRate,
		ProcessingTimeDays: req.ProcessingTimeDays,
		Requirements:       req.Requirements,
		CollateralRequired: req.CollateralRequired,
		Website:            req.Website,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		LogoURL:            req.LogoURL,
		CreatedAt:          time.Now().UTC(),
	}
	if m.Requirements == nil {
		m.Requirements = []string{}
	}
	if err := m.Validate(); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.mfis.Create(r.Context(), m); err != nil {
		slog.Error("create mfi", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	web.JSON(w, http.StatusOK, m)
}

// ListProducts returns loan products, optionally filtered by mfi_id. Public.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("mfi_id"), listLimit)
	if err != nil {
		slog.Error("list loan products", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if products == nil {
		products = []*domain.LoanProduct{}
	}
	web.JSON(w, http.StatusOK, products)
}

func writeGuardError(w http.ResponseWriter, err error, forbiddenDetail string) {
	switch {
	case errors.Is(err, rbac.ErrUnauthenticated):
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, rbac.ErrForbidden):
		web.Error(w, http.StatusForbidden, forbiddenDetail)
	default:
		slog.Error("authz", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
