// Package validators wraps go-playground/validator with the custom tags used by domain entities.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/hubverse/hub-services/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	instance     *validator.Validate
	instanceOnce sync.Once
)

// Get returns the shared validator with all custom validations registered.
func Get() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New()
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("username", UsernameValidation)
		_ = v.RegisterValidation("currency", CurrencyValidation)
		_ = v.RegisterValidation("slug", SlugValidation)
		instance = v
	})
	return instance
}

// UsernameValidation accepts 3 to 32 letters, digits or underscores.
func UsernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// CurrencyValidation accepts three upper-case letters (ISO 4217 shape).
func CurrencyValidation(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}

// SlugValidation accepts lower-case alphanumeric words joined by single dashes.
func SlugValidation(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// ValidateStruct validates s and flattens field errors into one message wrapping apperr.ErrInvalidInput.
func ValidateStruct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: [%s]: %w", strings.Join(messages, ", "), apperr.ErrInvalidInput)
	}
	return fmt.Errorf("validation error: %v: %w", err, apperr.ErrInvalidInput)
}
