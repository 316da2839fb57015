package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Catalog sources.
const (
	CatalogSourceAPI      = "api"
	CatalogSourcePostgres = "postgres"
)

// Cart backends.
const (
	CartBackendMemory   = "memory"
	CartBackendRedis    = "redis"
	CartBackendPostgres = "postgres"
)

// Feature modes.
const (
	FeatureModeStatic  = "static"
	FeatureModeDerived = "derived"
)

// ErrInvalidConfig is wrapped by every validation failure in Load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // e.g., development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // e.g., debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
	Backend    BackendConfig
	Redis      RedisConfig
	Storefront StorefrontConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds PostgreSQL connection details. Only needed when the
// catalog or carts live in Postgres.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DBNAME"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName, pc.SSLMode)
}

// BackendConfig points at the upstream product API.
type BackendConfig struct {
	URL     string        `envconfig:"BACKEND_API_URL" default:"http://localhost:8000/api"`
	Timeout time.Duration `envconfig:"BACKEND_API_TIMEOUT" default:"10s"`
}

// RedisConfig is used by the redis cart backend.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CartTTL  time.Duration `envconfig:"CART_TTL" default:"24h"`
}

// StorefrontConfig selects data sources and display behaviour.
type StorefrontConfig struct {
	Currency      string `envconfig:"STOREFRONT_CURRENCY" default:"GBP"`
	CatalogSource string `envconfig:"CATALOG_SOURCE" default:"api"`
	CartBackend   string `envconfig:"CART_BACKEND" default:"memory"`
	FeatureMode   string `envconfig:"FEATURE_MODE" default:"derived"`
	RelatedLimit  int    `envconfig:"RELATED_PRODUCTS_LIMIT" default:"4"`
}

// UsesPostgres reports whether any component needs a database connection.
func (c *Config) UsesPostgres() bool {
	return c.Storefront.CatalogSource == CatalogSourcePostgres || c.Storefront.CartBackend == CartBackendPostgres
}

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	c.Storefront.CatalogSource = strings.ToLower(c.Storefront.CatalogSource)
	c.Storefront.CartBackend = strings.ToLower(c.Storefront.CartBackend)
	c.Storefront.FeatureMode = strings.ToLower(c.Storefront.FeatureMode)
	c.Storefront.Currency = strings.ToUpper(c.Storefront.Currency)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enum values and conditional requirements.
func (c *Config) Validate() error {
	switch c.Storefront.CatalogSource {
	case CatalogSourceAPI, CatalogSourcePostgres:
	default:
		return fmt.Errorf("%w: CATALOG_SOURCE %q", ErrInvalidConfig, c.Storefront.CatalogSource)
	}
	switch c.Storefront.CartBackend {
	case CartBackendMemory, CartBackendRedis, CartBackendPostgres:
	default:
		return fmt.Errorf("%w: CART_BACKEND %q", ErrInvalidConfig, c.Storefront.CartBackend)
	}
	switch c.Storefront.FeatureMode {
	case FeatureModeStatic, FeatureModeDerived:
	default:
		return fmt.Errorf("%w: FEATURE_MODE %q", ErrInvalidConfig, c.Storefront.FeatureMode)
	}
	if c.Storefront.RelatedLimit < 0 {
		return fmt.Errorf("%w: RELATED_PRODUCTS_LIMIT must not be negative", ErrInvalidConfig)
	}
	if c.Storefront.CatalogSource == CatalogSourceAPI && c.Backend.URL == "" {
		return fmt.Errorf("%w: BACKEND_API_URL is required for the api catalog source", ErrInvalidConfig)
	}

	if c.UsesPostgres() {
		var missing []string
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DBNAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
		}
	}
	return nil
}
