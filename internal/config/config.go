package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Backends BackendConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values for session storage.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig defines session cookie and storage parameters.
type SessionConfig struct {
	CookieName    string
	KeyPrefix     string
	ChangeChannel string
}

// BackendConfig holds base URLs for the upstream services the gateway fronts.
type BackendConfig struct {
	IdentityURL string
	CatalogURL  string
	StockURL    string
	CartURL     string
	PaymentURL  string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			KeyPrefix:     getEnv("SESSION_KEY_PREFIX", "storefront:"),
			ChangeChannel: getEnv("SESSION_CHANGE_CHANNEL", "storefront:session:changes"),
		},
		Backends: BackendConfig{
			IdentityURL: getEnv("IDENTITY_SERVICE_URL", "http://localhost/autenticacao/api"),
			CatalogURL:  getEnv("CATALOG_SERVICE_URL", "http://localhost/vitrine/api/v1/vitrine"),
			StockURL:    getEnv("STOCK_SERVICE_URL", "http://localhost/api/v1/estoque"),
			CartURL:     getEnv("CART_SERVICE_URL", "http://localhost/carrinho/api/v1/cart"),
			PaymentURL:  getEnv("PAYMENT_SERVICE_URL", "http://localhost/api/payments"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
