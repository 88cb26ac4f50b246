// Package server wires the HTTP router: middleware chain, /api routes, and
// the metrics endpoint.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	analyticshandler "grameengo/backend/internal/analytics/handler"
	analyticsrepo "grameengo/backend/internal/analytics/repository"
	applicationhandler "grameengo/backend/internal/application/handler"
	applicationservice "grameengo/backend/internal/application/service"
	authhandler "grameengo/backend/internal/auth/handler"
	authservice "grameengo/backend/internal/auth/service"
	healthhandler "grameengo/backend/internal/health/handler"
	"grameengo/backend/internal/metrics"
	mfihandler "grameengo/backend/internal/mfi/handler"
	mfirepo "grameengo/backend/internal/mfi/repository"
	"grameengo/backend/internal/middleware"
	notificationhandler "grameengo/backend/internal/notification/handler"
	notificationservice "grameengo/backend/internal/notification/service"
	"grameengo/backend/internal/platform/rbac"
)

// Deps holds the services and repositories the router exposes.
type Deps struct {
	Auth          *authservice.Service
	Applications  *applicationservice.Service
	Notifications *notificationservice.Service
	MFIs          mfirepo.Repository
	Products      mfirepo.ProductRepository
	Analytics     analyticsrepo.Repository
	Guard         *rbac.Guard

	// HealthPinger is the readiness DB check (e.g. *sql.DB). May be nil.
	HealthPinger healthhandler.Pinger

	Logger *slog.Logger
	// Metrics instruments requests and serves /metrics. May be nil.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	CORSOrigins []string
	// AuthRateLimiter throttles the credential endpoints. May be nil.
	AuthRateLimiter *middleware.RateLimiter
	CookieSecure    bool
}

// New builds the router. Route layout mirrors the public API: everything
// under /api plus /metrics for Prometheus.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware(routePattern))
	}
	if deps.Logger != nil {
		r.Use(middleware.Logging(deps.Logger))
	}
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.Identity(deps.Auth))

	r.Route("/api", func(api chi.Router) {
		healthhandler.NewHandler(deps.HealthPinger, deps.Guard).Mount(api)

		if deps.AuthRateLimiter != nil {
			api.Group(func(limited chi.Router) {
				limited.Use(deps.AuthRateLimiter.Middleware)
				auth := authhandler.NewHandler(deps.Auth, deps.CookieSecure)
				limited.Post("/auth/register", auth.Register)
				limited.Post("/auth/login", auth.Login)
			})
			auth := authhandler.NewHandler(deps.Auth, deps.CookieSecure)
			api.Post("/auth/session", auth.CreateSession)
			api.Get("/auth/me", auth.Me)
			api.Post("/auth/logout", auth.Logout)
		} else {
			authhandler.NewHandler(deps.Auth, deps.CookieSecure).Mount(api)
		}

		mfihandler.NewHandler(deps.MFIs, deps.Products, deps.Guard).Mount(api)
		applicationhandler.NewHandler(deps.Applications, deps.Guard).Mount(api)
		notificationhandler.NewHandler(deps.Notifications).Mount(api)
		analyticshandler.NewHandler(deps.Analytics, deps.Guard).Mount(api)
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
