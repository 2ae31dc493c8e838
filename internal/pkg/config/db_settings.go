package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings selects the gorm dialect and connection string.
// DSN falls back to DATABASE_URL, the variable every deployment already sets.
type DatabaseSettings struct {
	Type   string `yaml:"type" envconfig:"DATABASE_TYPE" validate:"required,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" envconfig:"DATABASE_URL"`
	DBName string `yaml:"name" envconfig:"DATABASE_NAME"`
}

// Validate checks the database settings.
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type == PostgresDbType && s.DSN == "" {
		return fmt.Errorf("dsn is required for postgres")
	}

	return nil
}
