// Package testutil provides shared test doubles and fixtures for tests.
package testutil

import (
	"testing"

	"blogapi/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenSQLite returns a migrated in-memory sqlite database with foreign keys
// enforced. It is closed when the test ends.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
