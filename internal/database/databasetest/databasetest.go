// Package databasetest provides throwaway in-memory SQLite databases with
// the application schema already created.
package databasetest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"userapi/internal/config"
	"userapi/internal/database"
	"userapi/internal/database/migration"
	"userapi/internal/logging"
)

// Open returns a fresh database that lives until the test finishes.
func Open(t testing.TB) *bun.DB {
	t.Helper()

	db, err := database.New(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = migration.EnsureSchema(context.Background(), db, logging.New(io.Discard, time.UTC))
	require.NoError(t, err)

	return db
}

// Session opens a session on db and closes it when the test finishes.
func Session(t testing.TB, db *bun.DB) *database.Session {
	t.Helper()

	s, err := database.NewSessions(db).Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}
