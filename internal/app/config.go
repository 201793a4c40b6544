package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pulsegrid/console/internal/api"
)

// Config holds runtime configuration for the console.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	APIBaseURL string        `envconfig:"API_BASE_URL"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	TokenKey  string        `envconfig:"TOKEN_KEY" default:"pg_token"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = api.DefaultBaseURL
	}
	return &cfg, nil
}

// IsProduction returns true when the console runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
