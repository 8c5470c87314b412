// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"testing"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh, migrated database private to the test. A single
// connection is used so concurrent callers serialise like they would on
// one SQLite writer.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := config.OpenDatabase(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		_ = config.CloseDatabase(db)
	})
	return db
}
