package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures JWT issuance and verification.
type AuthSettings struct {
	Secret   string        `yaml:"secret" envconfig:"JWT_SECRET" validate:"required,min=16"`
	Issuer   string        `yaml:"issuer" envconfig:"JWT_ISSUER" validate:"required"`
	TokenTTL time.Duration `yaml:"token_ttl" envconfig:"JWT_TTL" validate:"gt=0"`
}

// Validate checks the auth settings.
func (s *AuthSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}
