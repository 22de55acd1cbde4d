package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Introspection modes accepted by GRAPHQL_INTROSPECTION.
const (
	IntrospectionAuto = "auto"
	IntrospectionOn   = "on"
	IntrospectionOff  = "off"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development" validate:"required"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":4000" validate:"required"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s" validate:"gt=0"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s" validate:"gt=0"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"oneof=pretty text json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	FixtureDir string `envconfig:"FIXTURE_DIR" default:"data" validate:"required"`

	GraphQLIntrospection string `envconfig:"GRAPHQL_INTROSPECTION" default:"auto" validate:"oneof=auto on off"`
	GraphQLMaxDepth      int    `envconfig:"GRAPHQL_MAX_DEPTH" default:"12" validate:"gte=0"`
	GraphQLMaxBodyBytes  int64  `envconfig:"GRAPHQL_MAX_BODY_BYTES" default:"1048576" validate:"gt=0"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"120" validate:"gte=0"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m" validate:"gt=0"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// LoadConfig reads configuration from environment variables. Variables from
// a .env file in the working directory are applied first without overriding
// the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.GraphQLIntrospection = strings.ToLower(strings.TrimSpace(cfg.GraphQLIntrospection))
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// IntrospectionEnabled resolves GRAPHQL_INTROSPECTION against the environment.
func (c *Config) IntrospectionEnabled() bool {
	if c == nil {
		return true
	}
	switch c.GraphQLIntrospection {
	case IntrospectionOn:
		return true
	case IntrospectionOff:
		return false
	default:
		return !c.IsProduction()
	}
}
