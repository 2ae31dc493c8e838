//go:build unit
// +build unit

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-test"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, "hub-community", time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenManager("too-short", "hub-community", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager(testSecret, "", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager(testSecret, "hub-community", 0)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)
	p := Principal{UserID: "u-1", Email: "ada@example.com", Username: "ada", Role: RoleModerator}

	token, expiresAt, err := m.Issue(p)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, "hub-community", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	m := newTestManager(t)
	p := Principal{UserID: "u-1", Role: RoleMember}

	first, _, err := m.Issue(p)
	require.NoError(t, err)
	second, _, err := m.Issue(p)
	require.NoError(t, err)

	c1, err := m.Verify(first)
	require.NoError(t, err)
	c2, err := m.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestIssue_RequiresSubject(t *testing.T) {
	m := newTestManager(t)
	_, _, err := m.Issue(Principal{Role: RoleMember})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestVerify_RejectsExpired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.Issue(Principal{UserID: "u-1", Role: RoleMember})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerify_RejectsWrongIssuer(t *testing.T) {
	other, err := NewTokenManager(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)
	token, _, err := other.Issue(Principal{UserID: "u-1", Role: RoleMember})
	require.NoError(t, err)

	_, err = newTestManager(t).Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	other, err := NewTokenManager("another-secret-0123456", "hub-community", time.Hour)
	require.NoError(t, err)
	token, _, err := other.Issue(Principal{UserID: "u-1", Role: RoleMember})
	require.NoError(t, err)

	_, err = newTestManager(t).Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    "hub-community",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager(t).Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerify_RejectsRSASigned(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			Issuer:    "hub-community",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	_, err = newTestManager(t).Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	_, err := newTestManager(t).Verify("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
