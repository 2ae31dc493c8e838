package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// MessagingSettings configures the AMQP event bus. An empty URL disables messaging.
type MessagingSettings struct {
	URL      string `yaml:"url" envconfig:"RABBITMQ_URL" validate:"omitempty,url"`
	Exchange string `yaml:"exchange" envconfig:"RABBITMQ_EXCHANGE" validate:"required_with=URL"`
	Queue    string `yaml:"queue" envconfig:"RABBITMQ_QUEUE"`
	Prefetch int    `yaml:"prefetch" validate:"gte=0"`
}

// Enabled reports whether a broker is configured.
func (s *MessagingSettings) Enabled() bool {
	return s.URL != ""
}

// Validate checks the messaging settings.
func (s *MessagingSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for MessagingSettings: %w", err)
	}
	return nil
}

// TracingSettings configures OTLP trace export. An empty endpoint disables tracing.
type TracingSettings struct {
	Endpoint    string  `yaml:"endpoint" envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"OTEL_SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Enabled reports whether an exporter endpoint is configured.
func (s *TracingSettings) Enabled() bool {
	return s.Endpoint != ""
}

// RateLimitSettings configures per client IP request limiting. Zero requests disables it.
type RateLimitSettings struct {
	Requests int           `yaml:"requests" envconfig:"RATE_LIMIT_REQUESTS" validate:"gte=0"`
	Window   time.Duration `yaml:"window" envconfig:"RATE_LIMIT_WINDOW"`
}

// validateObservability checks tracing and rate limit settings together.
func validateObservability(tr *TracingSettings, rl *RateLimitSettings) error {
	validate := validator.New()
	if err := validate.Struct(tr); err != nil {
		return fmt.Errorf("validation failed for TracingSettings: %w", err)
	}
	if err := validate.Struct(rl); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}
	if rl.Requests > 0 && rl.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive when requests is set")
	}
	return nil
}
