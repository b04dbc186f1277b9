package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"blogapi/internal/config"
	"blogapi/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestIsIntegrityViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicated key", gorm.ErrDuplicatedKey, true},
		{"foreign key", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg not null", &pgconn.PgError{Code: "23502"}, true},
		{"pg check", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23514"}), true},
		{"pg syntax", &pgconn.PgError{Code: "42601"}, false},
		{"sqlite unique", errors.New("UNIQUE constraint failed: authors.email"), true},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), true},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIntegrityViolation(tt.err))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		"":                           "file::memory:?_foreign_keys=on",
		":memory:":                   "file::memory:?_foreign_keys=on",
		"blog.db":                    "blog.db?_foreign_keys=on",
		"file::memory:?cache=shared": "file::memory:?cache=shared&_foreign_keys=on",
		"blog.db?_foreign_keys=off":  "blog.db?_foreign_keys=off",
	}
	for in, want := range tests {
		assert.Equal(t, want, sqliteDSN(in), in)
	}
}

func TestConfigurePool(t *testing.T) {
	db, err := OpenSQLite("file:pool_test?mode=memory")
	require.NoError(t, err)

	cfg := &config.Config{
		DBDriver:                 config.DriverSQLite,
		DatabaseURL:              "file:pool_test?mode=memory",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenSQLite_CascadeAndUniqueness(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	author := models.Author{Name: "A", Email: "a@x.com"}
	require.NoError(t, db.WithContext(ctx).Create(&author).Error)
	require.NoError(t, db.WithContext(ctx).Create(&models.Post{Title: "T", Content: "C", AuthorID: author.ID}).Error)

	err := db.WithContext(ctx).Create(&models.Author{Name: "B", Email: "a@x.com"}).Error
	require.Error(t, err)
	assert.True(t, IsIntegrityViolation(err), "unexpected error: %v", err)

	err = db.WithContext(ctx).Create(&models.Post{Title: "T", Content: "C", AuthorID: 999}).Error
	require.Error(t, err)
	assert.True(t, IsIntegrityViolation(err), "unexpected error: %v", err)

	require.NoError(t, db.WithContext(ctx).Delete(&models.Author{}, author.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplySchema_SQLiteUsesAutoMigrate(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	cfg := &config.Config{DBDriver: config.DriverSQLite, DBSchemaMode: config.SchemaModeSQL, Env: "test"}
	require.NoError(t, ApplySchema(context.Background(), db, cfg))

	assert.True(t, db.Migrator().HasTable(&models.Author{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))
	assert.False(t, db.Migrator().HasTable(&MigrationLog{}))

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Ping(context.Background(), db))
}
