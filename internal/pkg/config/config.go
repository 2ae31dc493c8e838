package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Service names
const (
	ServiceCommunity   = "community"
	ServiceMarketplace = "marketplace"
	ServiceAcademy     = "academy"
	ServiceBusiness    = "business"
	ServiceProxy       = "proxy"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// ServiceConfig is the complete configuration of one service binary.
type ServiceConfig struct {
	Name        string `yaml:"name" envconfig:"SERVICE_NAME" validate:"required,oneof=community marketplace academy business proxy"`
	Environment string `yaml:"environment" envconfig:"APP_ENV" validate:"required,oneof=development test staging production"`
	Version     string `yaml:"version" envconfig:"SERVICE_VERSION" validate:"required"`
	Port        string `yaml:"port" envconfig:"PORT" validate:"required,numeric"`

	Database  DatabaseSettings  `yaml:"database" validate:"-"`
	Logger    LoggerSettings    `yaml:"logger" validate:"-"`
	Auth      AuthSettings      `yaml:"auth" validate:"-"`
	Messaging MessagingSettings `yaml:"messaging" validate:"-"`
	Tracing   TracingSettings   `yaml:"tracing" validate:"-"`
	RateLimit RateLimitSettings `yaml:"rate_limit" validate:"-"`
	Proxy     ProxySettings     `yaml:"proxy" validate:"-"`
}

// Default returns the built-in configuration for service.
func Default(service string) *ServiceConfig {
	return &ServiceConfig{
		Name:        service,
		Environment: EnvDevelopment,
		Version:     "0.1.0",
		Port:        "8080",
		Database: DatabaseSettings{
			Type: SqliteDbType,
			DSN:  ":memory:",
		},
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Auth: AuthSettings{
			Issuer:   "hub-community",
			TokenTTL: 24 * time.Hour,
		},
		Messaging: MessagingSettings{
			Exchange: "hub.events",
			Queue:    "hub." + service,
			Prefetch: 16,
		},
		Tracing: TracingSettings{
			SampleRatio: 1,
		},
		RateLimit: RateLimitSettings{
			Requests: 100,
			Window:   time.Second,
		},
		Proxy: ProxySettings{
			Timeout:       15 * time.Second,
			HealthTimeout: 2 * time.Second,
		},
	}
}

// Load resolves the configuration for service from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist) and the environment, then validates it.
func Load(path, service string) (*ServiceConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default(service)

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c *ServiceConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate checks the top-level fields and the settings the service actually uses.
func (c *ServiceConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for ServiceConfig: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := validateObservability(&c.Tracing, &c.RateLimit); err != nil {
		return err
	}

	if c.Name == ServiceProxy {
		return c.Proxy.Validate()
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Messaging.Validate()
}
