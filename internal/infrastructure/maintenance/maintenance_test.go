//go:build unit
// +build unit

package maintenance

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifiedName(t *testing.T) {
	schema, table, err := qualifiedName("schema_migrations")
	require.NoError(t, err)
	assert.Equal(t, "public", schema)
	assert.Equal(t, "schema_migrations", table)

	schema, table, err = qualifiedName("ops.migrations")
	require.NoError(t, err)
	assert.Equal(t, "ops", schema)
	assert.Equal(t, "migrations", table)

	for _, bad := range []string{"", ".x", "a.b.c", "x."} {
		_, _, err := qualifiedName(bad)
		assert.Error(t, err, bad)
	}
}

func TestQuoteIdentEscapesQuotes(t *testing.T) {
	assert.Equal(t, `"public"."schema_migrations"`, quoteIdent("public", "schema_migrations"))
	assert.Equal(t, `"public"."x""; DROP TABLE users; --"`, quoteIdent("public", `x"; DROP TABLE users; --`))
}

func TestFailedRowsCriteria(t *testing.T) {
	c, err := failedRowsCriteria(map[string]bool{"version": true, "dirty": true})
	require.NoError(t, err)
	assert.Equal(t, "dirty = true", c)

	c, err = failedRowsCriteria(map[string]bool{"id": true, "status": true})
	require.NoError(t, err)
	assert.Contains(t, c, "rolled_back")

	_, err = failedRowsCriteria(map[string]bool{"version": true})
	assert.Error(t, err)
}

func TestMissingRLS(t *testing.T) {
	tables := []TableRLS{{Name: "users", Enabled: true}, {Name: "posts"}, {Name: "chats", Forced: true}}
	assert.Equal(t, []string{"posts", "chats"}, MissingRLS(tables))
	assert.Empty(t, MissingRLS([]TableRLS{{Name: "users", Enabled: true}}))
}

func TestBuildSeed(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	users, posts := buildSeed(SeedOptions{Users: 3, Posts: 10, Rand: rand.New(rand.NewSource(1))}, now)

	require.Len(t, users, 3)
	require.Len(t, posts, 10)
	assert.Equal(t, "demo_user_1@example.com", users[0].Email)

	ids := map[string]bool{}
	for _, u := range users {
		ids[u.ID] = true
	}
	for _, p := range posts {
		assert.True(t, ids[p.AuthorID])
		assert.True(t, strings.HasPrefix(p.Tags, ",") && strings.HasSuffix(p.Tags, ","))
		assert.False(t, p.Created.After(now))
		assert.True(t, p.Created.After(now.Add(-366*24*time.Hour)))
	}
}

func TestBuildSeedWithoutUsers(t *testing.T) {
	users, posts := buildSeed(SeedOptions{Posts: 5}, time.Now())
	assert.Empty(t, users)
	assert.Empty(t, posts)
}
