package migration

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrator_UpAndDown(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m, err := NewMigrator(db, "sqlite", logger.NewNop())
	require.NoError(t, err)

	pending, err := m.HasPending(ctx)
	require.NoError(t, err)
	assert.True(t, pending)

	require.NoError(t, m.Up(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"tickets", "ticket_messages", "saved_fields", "users"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, goose.StateApplied, statuses[0].State)

	require.NoError(t, m.Down(ctx, 1))
	assert.False(t, db.Migrator().HasTable("tickets"))
}

func TestNewMigrator_UnknownDriver(t *testing.T) {
	_, err := NewMigrator(openTestDB(t), "oracle", logger.NewNop())
	assert.Error(t, err)
}

func TestAutoMigrate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable("saved_fields"))
}

func TestScriptsDir(t *testing.T) {
	assert.Equal(t, "internal/infrastructure/migration/scripts/mysql", ScriptsDir(""))
	assert.Equal(t, "internal/infrastructure/migration/scripts/postgres", ScriptsDir("postgres"))
}
