// Package migration applies the versioned SQL schema with goose.
package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/models"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// ScriptsDir is where `migrate create` writes new scripts for a driver.
func ScriptsDir(driver string) string {
	return "internal/infrastructure/migration/scripts/" + scriptsSubdir(driver)
}

func scriptsSubdir(driver string) string {
	if driver == "" {
		return "mysql"
	}
	return driver
}

func dialectFor(driver string) (goose.Dialect, error) {
	switch driver {
	case "mysql", "":
		return goose.DialectMySQL, nil
	case "postgres":
		return goose.DialectPostgres, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migration dialect for driver %q", driver)
	}
}

// Migrator runs the embedded scripts for one database driver.
type Migrator struct {
	provider *goose.Provider
	logger   logger.Interface
}

func NewMigrator(db *gorm.DB, driver string, log logger.Interface) (*Migrator, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	fsys, err := fs.Sub(scripts, "scripts/"+scriptsSubdir(driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		logger:   log.With("component", "migration.goose"),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	from, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	results, err := m.provider.Up(ctx)
	if err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		m.logger.Infow("migration applied", "result", r.String())
	}

	to, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed successfully",
		"from_version", from,
		"to_version", to,
	)
	return nil
}

// Down rolls back steps migrations, newest first.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	m.logger.Infow("starting down migration", "steps", steps)

	for i := 0; i < steps; i++ {
		r, err := m.provider.Down(ctx)
		if err != nil {
			m.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		m.logger.Infow("migration rolled back", "result", r.String())
	}
	return nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

// HasPending reports whether migrations are waiting to be applied.
func (m *Migrator) HasPending(ctx context.Context) (bool, error) {
	return m.provider.HasPending(ctx)
}

// Status lists every known migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	return m.provider.Status(ctx)
}

// Create writes an empty SQL migration named name into dir.
func Create(dir, name string) error {
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

// AutoMigrate syncs the schema from the gorm models. Used by tests and the
// server's --auto-migrate development flag.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.MessageModel{},
		&models.SavedFieldModel{},
		&models.UserModel{},
	)
}
