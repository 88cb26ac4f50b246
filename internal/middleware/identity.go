// Package middleware holds the HTTP middleware chain: identity resolution,
// CORS, rate limiting, request logging, and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"grameengo/backend/internal/platform/web"
	userdomain "grameengo/backend/internal/user/domain"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// Resolver maps request credentials to a user; nil user means unauthenticated.
type Resolver interface {
	Resolve(ctx context.Context, bearerToken, sessionToken string) (*userdomain.User, error)
}

// UserFrom returns the resolved user stored in ctx, or nil.
func UserFrom(ctx context.Context) *userdomain.User {
	u, _ := ctx.Value(userContextKey).(*userdomain.User)
	return u
}

// WithUser returns a ctx carrying u. Exposed for handler tests.
func WithUser(ctx context.Context, u *userdomain.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// Identity resolves the caller from the session_token cookie and the bearer
// token (Authorization header, falling back to the auth_token cookie) and
// stores the user in the request context. Unresolved requests pass through
// with no user; individual routes decide whether auth is required.
func Identity(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), bearerToken(r), sessionToken(r))
			if err != nil {
				web.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests whose context carries no resolved user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			web.Error(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie("auth_token"); err == nil {
		return c.Value
	}
	return ""
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie("session_token"); err == nil {
		return c.Value
	}
	return ""
}
