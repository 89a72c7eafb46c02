package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestInitDatabase_CreatesSessionTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "delta.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO session(key, value) VALUES ('user_id', '42')`)
	require.NoError(t, err)
}

func TestInitDatabase_MigrationsAreIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "delta.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
