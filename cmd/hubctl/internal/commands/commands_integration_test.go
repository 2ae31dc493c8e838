//go:build integration
// +build integration

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hubverse/hub-services/internal/infrastructure/persistence"
	"github.com/hubverse/hub-services/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBMigrateFromServiceConfig(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "academy.db")
	configPath := filepath.Join(dir, "academy-api.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  type: sqlite\n  dsn: "+dbPath+"\n"), 0600))

	t.Setenv("JWT_SECRET", "integration-secret-0123456789")
	for _, key := range []string{"DATABASE_URL", "DATABASE_TYPE", "DATABASE_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	root := NewRootCommand()
	require.NoError(t, InitDBCommands(root, NewLogger(os.Stderr)))
	root.SetArgs([]string{"db", "migrate", "--service", "academy", "--config", configPath})
	require.NoError(t, root.Execute())

	db, err := persistence.NewDBConnection(config.DatabaseSettings{Type: config.SqliteDbType, DSN: dbPath})
	require.NoError(t, err)
	defer func() { _ = persistence.CloseDB(db) }()

	for _, table := range []string{"courses", "lessons", "enrollments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.False(t, db.Migrator().HasTable("listings"))
}
