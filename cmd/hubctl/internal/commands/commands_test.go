//go:build unit
// +build unit

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs hubctl with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	log := testutil.SetupTestLogger(t)
	require.NoError(t, InitTokenCommands(root, log))
	require.NoError(t, InitDBCommands(root, log))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func setAuthEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", testutil.TestJWTSecret)
	t.Setenv("JWT_ISSUER", "hub-community")
	t.Setenv("JWT_TTL", "24h")
}

func TestTokenGenerateAndInspect(t *testing.T) {
	setAuthEnv(t)
	userID := "5f0c8c8e-8a55-4a4e-9d43-1f2f0b1c9b10"

	out, err := execute(t, "token", "generate",
		"--user-id", userID, "--email", "ada@example.com", "--username", "ada", "--role", "moderator", "--ttl", "1h")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)
	assert.Equal(t, 2, strings.Count(token, "."))

	out, err = execute(t, "token", "inspect", token)
	require.NoError(t, err)

	var claims TokenClaims
	require.NoError(t, json.Unmarshal([]byte(out), &claims))
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "hub-community", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestTokenGenerateDefaults(t *testing.T) {
	setAuthEnv(t)

	out, err := execute(t, "token", "generate")
	require.NoError(t, err)

	m := testutil.NewTokenManager(t)
	claims, err := m.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "member", claims.Role)
	assert.NotEmpty(t, claims.UserID())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenGenerateRejectsBadInput(t *testing.T) {
	setAuthEnv(t)

	_, err := execute(t, "token", "generate", "--role", "superuser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")

	_, err = execute(t, "token", "generate", "--user-id", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a UUID")
}

func TestTokenGenerateRequiresSecret(t *testing.T) {
	setAuthEnv(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := execute(t, "token", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthSettings")
}

func TestTokenInspectRejectsForeignTokens(t *testing.T) {
	setAuthEnv(t)

	out, err := execute(t, "token", "generate")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	_, err = execute(t, "token", "inspect", token+"x")
	assert.Error(t, err)

	t.Setenv("JWT_ISSUER", "someone-else")
	_, err = execute(t, "token", "inspect", token)
	assert.Error(t, err)

	_, err = execute(t, "token", "inspect")
	assert.Error(t, err)
}

func TestDBCommandsRequireDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	for _, args := range [][]string{
		{"db", "rls-status"},
		{"db", "cleanup-migrations", "--dry-run"},
		{"db", "seed", "--users", "1"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, strings.Join(args, " "))
		assert.Contains(t, err.Error(), "dsn is required")
	}
}

func TestDBSeedRejectsNegativeCounts(t *testing.T) {
	_, err := execute(t, "db", "seed", "--dsn", "postgres://localhost/hub", "--posts", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestDBMigrateValidatesService(t *testing.T) {
	_, err := execute(t, "db", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"service" not set`)

	_, err = execute(t, "db", "migrate", "--service", "proxy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owns no tables")
}
