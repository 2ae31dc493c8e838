//go:build unit
// +build unit

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamListDecode(t *testing.T) {
	var list UpstreamList
	err := list.Decode("community|/api/v1/community|http://community:8080, marketplace|/api/v1/marketplace|http://marketplace:8080,")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, UpstreamSettings{Name: "community", Prefix: "/api/v1/community", Target: "http://community:8080"}, list[0])
	assert.Equal(t, "marketplace", list[1].Name)

	err = list.Decode("broken|/x")
	assert.Error(t, err)
}

func TestProxySettingsValidation(t *testing.T) {
	valid := func() *ProxySettings {
		return &ProxySettings{
			Upstreams: UpstreamList{
				{Name: "community", Prefix: "/api/v1/community", Target: "http://community:8080"},
				{Name: "academy", Prefix: "/api/v1/academy", Target: "http://academy:8080"},
			},
			Timeout:       time.Second,
			HealthTimeout: time.Second,
		}
	}

	tests := []struct {
		name          string
		mutate        func(s *ProxySettings)
		expectedError bool
	}{
		{name: "valid", mutate: func(s *ProxySettings) {}},
		{name: "no upstreams", mutate: func(s *ProxySettings) { s.Upstreams = nil }, expectedError: true},
		{name: "prefix without slash", mutate: func(s *ProxySettings) { s.Upstreams[0].Prefix = "api" }, expectedError: true},
		{name: "invalid target", mutate: func(s *ProxySettings) { s.Upstreams[0].Target = "not a url" }, expectedError: true},
		{name: "duplicate prefix", mutate: func(s *ProxySettings) { s.Upstreams[1].Prefix = "/api/v1/community/" }, expectedError: true},
		{name: "zero timeout", mutate: func(s *ProxySettings) { s.Timeout = 0 }, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
