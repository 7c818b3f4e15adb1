package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "sudoku.db")

	conn, err := Open(dsn)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(conn))

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := conn.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
		assert.Equal(t, table, name)
	}

	var applied int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	// Running again must be a no-op.
	require.NoError(t, Migrate(conn))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestForeignKeysEnforced(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sudoku.db")
	conn, err := Open(dsn)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, Migrate(conn))

	_, err = conn.Exec(
		`INSERT INTO games (id, user_id, difficulty, started_at) VALUES ('g1', 'ghost', 'easy', '2026-01-01T00:00:00Z')`,
	)
	assert.Error(t, err, "insert referencing a missing user must fail")
}
