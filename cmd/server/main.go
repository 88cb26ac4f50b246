package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	analyticsrepo "grameengo/backend/internal/analytics/repository"
	applicationrepo "grameengo/backend/internal/application/repository"
	applicationservice "grameengo/backend/internal/application/service"
	"grameengo/backend/internal/auth/exchange"
	authservice "grameengo/backend/internal/auth/service"
	"grameengo/backend/internal/config"
	"grameengo/backend/internal/db"
	"grameengo/backend/internal/logger"
	"grameengo/backend/internal/metrics"
	mfirepo "grameengo/backend/internal/mfi/repository"
	"grameengo/backend/internal/middleware"
	notificationproducer "grameengo/backend/internal/notification/producer"
	notificationrepo "grameengo/backend/internal/notification/repository"
	notificationservice "grameengo/backend/internal/notification/service"
	"grameengo/backend/internal/platform/rbac"
	"grameengo/backend/internal/security"
	"grameengo/backend/internal/server"
	sessionrepo "grameengo/backend/internal/session/repository"
	"grameengo/backend/internal/telemetry/otel"
	userrepo "grameengo/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	slogger := logger.Setup(os.Stdout)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "grameengo-api", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	guard, err := rbac.NewGuard()
	if err != nil {
		log.Fatalf("rbac: %v", err)
	}

	tokens, err := tokenProvider(cfg)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	exchanger := exchange.NewClient(cfg.SessionExchangeURL, cfg.ExchangeTimeout())
	hasher := security.NewHasher(cfg.BcryptCost)
	auth := authservice.NewService(users, sessions, exchanger, hasher, tokens, cfg.SessionLifetime())

	var emitter notificationservice.Emitter
	if brokers := cfg.NotifyKafkaBrokersList(); len(brokers) > 0 {
		producer, err := notificationproducer.NewKafkaProducer(brokers, cfg.NotifyKafkaTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer producer.Close()
		emitter = producer
	}
	notifications := notificationservice.NewService(notificationrepo.NewPostgresRepository(conn), emitter)
	applications := applicationservice.NewService(applicationrepo.NewPostgresRepository(conn), notifications)

	authLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer authLimiter.Stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	router := server.New(server.Deps{
		Auth:            auth,
		Applications:    applications,
		Notifications:   notifications,
		MFIs:            mfirepo.NewPostgresRepository(conn),
		Products:        mfirepo.NewPostgresProductRepository(conn),
		Analytics:       analyticsrepo.NewPostgresRepository(conn),
		Guard:           guard,
		HealthPinger:    conn,
		Logger:          slogger,
		Metrics:         metrics.NewCollector(reg),
		Gatherer:        reg,
		CORSOrigins:     cfg.CORSOriginList(),
		AuthRateLimiter: authLimiter,
		CookieSecure:    cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}

// tokenProvider picks asymmetric signing when a key pair is configured,
// HS256 with JWT_SECRET otherwise.
func tokenProvider(cfg *config.Config) (*security.TokenProvider, error) {
	if cfg.JWTPrivateKey != "" {
		priv, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
		if err != nil {
			return nil, err
		}
		pub, err := security.ParsePublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, err
		}
		return security.NewTokenProviderFromKeys(priv, pub, cfg.JWTIssuer, cfg.TokenTTL()), nil
	}
	return security.NewTokenProvider(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL()), nil
}
