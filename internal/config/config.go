// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the HMAC secret for HS256 bearer tokens. Used when no key pair is set.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTPrivateKey is an optional PEM-encoded private key (RSA or ECDSA) or path to file; enables RS256/ES256 signing.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; required when JWT_PRIVATE_KEY is set.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	// JWTIssuer is the iss claim (e.g. "grameengo-api").
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTTTL is the bearer token lifetime (e.g. "168h" = 7d).
	JWTTTL string `mapstructure:"JWT_TTL"`
	// SessionTTL is the lifetime of exchanged sessions (e.g. "168h" = 7d).
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// SessionExchangeURL is the upstream endpoint that resolves X-Session-ID headers to user data.
	SessionExchangeURL string `mapstructure:"SESSION_EXCHANGE_URL"`
	// SessionExchangeTimeout bounds the upstream exchange call (e.g. "10s").
	SessionExchangeTimeout string `mapstructure:"SESSION_EXCHANGE_TIMEOUT"`
	// CORSOrigins is a comma-separated allowlist of origins; "*" allows any.
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	// CookieSecure marks auth cookies Secure; disable only for local HTTP development.
	CookieSecure bool `mapstructure:"COOKIE_SECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Notifications (optional). When Kafka brokers are set, created notifications are also published as events.
	// NotifyKafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	NotifyKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// NotifyKafkaTopic is the Kafka topic for notification events (default grameengo-notifications).
	NotifyKafkaTopic string `mapstructure:"NOTIFY_KAFKA_TOPIC"`

	// Worker-only: webhook the notification worker delivers events to (e.g. an SMS/email gateway bridge).
	NotifyWebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	// KafkaGroupID is the consumer group ID for the notification worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// OTLPEndpoint is the OTLP gRPC endpoint for traces/metrics; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "grameengo-api")
	v.SetDefault("JWT_TTL", "168h") // 7d
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("SESSION_EXCHANGE_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data")
	v.SetDefault("SESSION_EXCHANGE_TIMEOUT", "10s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("NOTIFY_KAFKA_TOPIC", "grameengo-notifications")
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "grameengo-notify-worker")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.JWTSecret == "" && cfg.JWTPrivateKey == "" && cfg.Env == "production" {
		return nil, errors.New("config: JWT_SECRET or a key pair must be set when APP_ENV=production")
	}
	if cfg.JWTPrivateKey != "" && cfg.JWTPublicKey == "" {
		return nil, errors.New("config: JWT_PUBLIC_KEY must be set when JWT_PRIVATE_KEY is set")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// TokenTTL parses JWTTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// SessionLifetime parses SessionTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) SessionLifetime() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// ExchangeTimeout parses SessionExchangeTimeout as a time.Duration. Returns 10s if unset or invalid.
func (c *Config) ExchangeTimeout() time.Duration {
	d, err := time.ParseDuration(c.SessionExchangeTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// CORSOriginList returns the allowed origins from the comma-separated config.
func (c *Config) CORSOriginList() []string {
	if c == nil || c.CORSOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NotifyKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if notification fan-out is enabled (non-empty list) and to create the producer.
func (c *Config) NotifyKafkaBrokersList() []string {
	if c == nil || c.NotifyKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.NotifyKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
