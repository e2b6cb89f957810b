package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestInitDatabase_CreatesCredentialStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "userdeck.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO credentials (key, value) VALUES ('auth_token', 'abc')`)
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM credentials WHERE key = 'auth_token'`).Scan(&v))
	require.Equal(t, "abc", v)
}

func TestInitDatabase_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "userdeck.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
