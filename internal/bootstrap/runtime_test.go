package bootstrap

import (
	"context"
	"testing"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(redisURL string) *config.Config {
	return &config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DatabaseURL:              ":memory:",
		DBSchemaMode:             config.SchemaModeHybrid,
		DBMaxOpenConns:           5,
		DBMaxIdleConns:           1,
		DBConnMaxLifetimeMinutes: 5,
		RedisURL:                 redisURL,
	}
}

func TestInitRuntime_SQLiteWithoutRedis(t *testing.T) {
	db, rdb, err := InitRuntime(context.Background(), sqliteConfig(""), Options{ApplySchema: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	assert.Nil(t, rdb)
	assert.True(t, db.Migrator().HasTable(&models.Author{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))
}

func TestInitRuntime_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	db, rdb, err := InitRuntime(context.Background(), sqliteConfig(mr.Addr()), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.NoError(t, rdb.Ping(context.Background()).Err())
	// schema was not requested
	assert.False(t, db.Migrator().HasTable(&models.Author{}))
}
