// Package handler exposes the auth service over HTTP: register, login,
// external session exchange, me, and logout.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grameengo/backend/internal/auth/exchange"
	"grameengo/backend/internal/auth/service"
	"grameengo/backend/internal/middleware"
	"grameengo/backend/internal/platform/web"
	userdomain "grameengo/backend/internal/user/domain"
)

const (
	authCookieName    = "auth_token"
	sessionCookieName = "session_token"
	cookieMaxAge      = int(7 * 24 * time.Hour / time.Second)
)

// Handler serves the /auth endpoints.
type Handler struct {
	service      *service.Service
	cookieSecure bool
}

// NewHandler returns an auth Handler. cookieSecure controls the Secure flag
// on the auth cookies; it is only off in local development.
func NewHandler(svc *service.Service, cookieSecure bool) *Handler {
	return &Handler{service: svc, cookieSecure: cookieSecure}
}

// Mount registers the auth routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/session", h.CreateSession)
	r.Get("/auth/me", h.Me)
	r.Post("/auth/logout", h.Logout)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a password user and issues a bearer token, also set as the
// auth_token cookie.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	role := userdomain.Role(req.Role)
	if role == "" {
		role = userdomain.RoleBorrower
	}
	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name, role)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			web.Error(w, http.StatusBadRequest, "Email already registered")
			return
		}
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.setCookie(w, authCookieName, res.Token)
	web.JSON(w, http.StatusOK, map[string]any{
		"id":    res.User.ID,
		"email": res.User.Email,
		"name":  res.User.Name,
		"role":  res.User.Role,
		"token": res.Token,
	})
}

// Login authenticates with email and password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			web.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login", "error", err)
		web.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.setCookie(w, authCookieName, res.Token)
	web.JSON(w, http.StatusOK, map[string]any{
		"id":      res.User.ID,
		"email":   res.User.Email,
		"name":    res.User.Name,
		"role":    res.User.Role,
		"picture": res.User.Picture,
		"token":   res.Token,
	})
}

// CreateSession exchanges the X-Session-ID header with the upstream provider,
// provisions the user on first sight, and sets the session_token cookie.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		web.Error(w, http.StatusBadRequest, "Missing X-Session-ID header")
		return
	}
	res, err := h.service.ExchangeSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, exchange.ErrInvalidSessionID) {
			web.Error(w, http.StatusBadRequest, "Invalid session ID")
			return
		}
		slog.Error("session exchange", "error", err)
		web.Error(w, http.StatusInternalServerError, "Session exchange failed")
		return
	}
	h.setCookie(w, sessionCookieName, res.SessionToken)
	web.JSON(w, http.StatusOK, map[string]any{
		"id":            res.User.ID,
		"email":         res.User.Email,
		"name":          res.User.Name,
		"role":          res.User.Role,
		"picture":       res.User.Picture,
		"session_token": res.SessionToken,
	})
}

// Me returns the resolved caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		web.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
		"picture":       user.Picture,
		"phone":         user.Phone,
		"business_name": user.BusinessName,
	})
}

// Logout deletes the stored session for the session_token cookie and clears
// both auth cookies. Bearer tokens are not revocable and stay valid until exp.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(sessionCookieName); err == nil {
		token = c.Value
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		slog.Error("logout", "error", err)
	}
	h.clearCookie(w, sessionCookieName)
	h.clearCookie(w, authCookieName)
	web.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	})
}
