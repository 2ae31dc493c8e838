package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// UpstreamSettings maps a path prefix to a backend service.
type UpstreamSettings struct {
	Name   string `yaml:"name" validate:"required"`
	Prefix string `yaml:"prefix" validate:"required,startswith=/"`
	Target string `yaml:"target" validate:"required,url"`
}

// UpstreamList decodes PROXY_UPSTREAMS in the form
// "name|prefix|target,name|prefix|target".
type UpstreamList []UpstreamSettings

// Decode implements envconfig.Decoder.
func (l *UpstreamList) Decode(value string) error {
	var out UpstreamList
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return fmt.Errorf("invalid upstream %q: want name|prefix|target", entry)
		}
		out = append(out, UpstreamSettings{
			Name:   strings.TrimSpace(parts[0]),
			Prefix: strings.TrimSpace(parts[1]),
			Target: strings.TrimSpace(parts[2]),
		})
	}
	*l = out
	return nil
}

// ProxySettings configures the edge proxy.
type ProxySettings struct {
	Upstreams     UpstreamList  `yaml:"upstreams" envconfig:"PROXY_UPSTREAMS" validate:"dive"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"PROXY_TIMEOUT" validate:"gt=0"`
	HealthTimeout time.Duration `yaml:"health_timeout" envconfig:"PROXY_HEALTH_TIMEOUT" validate:"gt=0"`
}

// Validate checks the proxy settings, including prefix uniqueness.
func (s *ProxySettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for ProxySettings: %w", err)
	}
	if len(s.Upstreams) == 0 {
		return fmt.Errorf("at least one upstream is required")
	}

	seen := make(map[string]string, len(s.Upstreams))
	for _, u := range s.Upstreams {
		prefix := strings.TrimSuffix(u.Prefix, "/")
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("upstreams %s and %s share prefix %s", other, u.Name, u.Prefix)
		}
		seen[prefix] = u.Name
	}
	return nil
}
