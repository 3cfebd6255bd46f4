package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "STOREFRONT_APP_ENV"
	EnvPort                   = "STOREFRONT_APP_PORT"
	EnvLogLevel               = "STOREFRONT_LOG_LEVEL"
	EnvSessionIdleTTL         = "STOREFRONT_SESSION_IDLE_TTL"
	EnvSessionSweepInterval   = "STOREFRONT_SESSION_SWEEP_INTERVAL"
	EnvSessionCookieName      = "STOREFRONT_SESSION_COOKIE_NAME"
	EnvCartEnforceStockLimit  = "STOREFRONT_CART_ENFORCE_STOCK_LIMIT"
	EnvRedisURL               = "STOREFRONT_REDIS_URL"
	EnvRedisAddr              = "STOREFRONT_REDIS_ADDR"
	EnvCheckoutRateWindow     = "STOREFRONT_RATE_LIMIT_CHECKOUT_WINDOW"
	EnvCheckoutSessionLimit   = "STOREFRONT_RATE_LIMIT_CHECKOUT_SESSION_LIMIT"
	EnvCheckoutIPLimit        = "STOREFRONT_RATE_LIMIT_CHECKOUT_IP_LIMIT"
	EnvCORSAllowedOrigins     = "STOREFRONT_CORS_ALLOWED_ORIGINS"
	EnvMetricsEnabled         = "STOREFRONT_METRICS_ENABLED"
	EnvIdempotencyTTL         = "STOREFRONT_IDEMPOTENCY_TTL"
	EnvShutdownTimeout        = "STOREFRONT_SHUTDOWN_TIMEOUT"
	EnvSessionCookieSecure    = "STOREFRONT_SESSION_COOKIE_SECURE"
	defaultSessionCookieName  = "sf_session"
	minimumSessionSweepPeriod = time.Second
)

type Config struct {
	App       AppConfig
	Session   SessionConfig
	Cart      CartConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port            string        `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SessionConfig bounds how long an idle shopping session keeps its cart in memory.
type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"STOREFRONT_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"5m"`
	CookieName    string        `envconfig:"STOREFRONT_SESSION_COOKIE_NAME" default:"sf_session"`
	CookieSecure  bool          `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"false"`
}

func (s *SessionConfig) validate() error {
	if s.IdleTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionIdleTTL)
	}
	if s.SweepInterval < minimumSessionSweepPeriod {
		return fmt.Errorf("%s must be at least %s", EnvSessionSweepInterval, minimumSessionSweepPeriod)
	}
	if strings.TrimSpace(s.CookieName) == "" {
		s.CookieName = defaultSessionCookieName
	}
	return nil
}

type CartConfig struct {
	EnforceStockLimit bool `envconfig:"STOREFRONT_CART_ENFORCE_STOCK_LIMIT" default:"false"`
}

// RedisConfig is optional; checkout idempotency and rate limiting are disabled without it.
type RedisConfig struct {
	URL            string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address        string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password       string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB             int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize       int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout    time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"STOREFRONT_IDEMPOTENCY_TTL" default:"24h"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	CheckoutWindow       time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutSessionLimit int           `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_SESSION_LIMIT" default:"5"`
	CheckoutIPLimit      int           `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_IP_LIMIT" default:"30"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"STOREFRONT_METRICS_ENABLED" default:"true"`
}
