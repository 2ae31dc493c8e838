// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is the signing secret used by test token managers.
const TestJWTSecret = "test-secret-0123456789abcdef"

// NewTokenManager returns a TokenManager with test settings.
func NewTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(TestJWTSecret, "hub-community", time.Hour)
	require.NoError(t, err)
	return m
}

// NewPrincipal returns a principal with a fresh user id.
func NewPrincipal(role string) auth.Principal {
	id := uuid.NewString()
	return auth.Principal{
		UserID:   id,
		Email:    id[:8] + "@example.com",
		Username: "user_" + id[:8],
		Role:     role,
	}
}

// BearerToken issues a token for p and returns the Authorization header value.
func BearerToken(t *testing.T, m *auth.TokenManager, p auth.Principal) string {
	t.Helper()
	token, _, err := m.Issue(p)
	require.NoError(t, err)
	return "Bearer " + token
}
