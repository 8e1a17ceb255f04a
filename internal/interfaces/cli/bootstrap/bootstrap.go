// Package bootstrap loads configuration, logging and the database for the
// command line entry points.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/infrastructure/config"
	"github.com/hotline-inc/hotline/internal/infrastructure/database"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// Env is the loaded runtime of one command invocation.
type Env struct {
	Name   string
	Config *config.Config
	Log    logger.Interface

	closer io.Closer
	db     *gorm.DB
}

// Load reads the configuration for environment name and builds the logger.
// The ENV variable overrides name.
func Load(name, configPath string) (*Env, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		name = envVar
	}

	cfg, err := config.Load(name, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = MapEnvToGinMode(cfg.Server.Mode)

	log, closer, err := logger.New(cfg.Logger, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &Env{Name: name, Config: cfg, Log: log, closer: closer}, nil
}

// OpenDatabase connects to the configured database. The connection is
// closed by Close.
func (e *Env) OpenDatabase(ctx context.Context) (*gorm.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	db, err := database.Open(ctx, e.Config.Database, e.Log)
	if err != nil {
		return nil, err
	}
	e.db = db
	return db, nil
}

// Close releases the database and the log output.
func (e *Env) Close() {
	if e.db != nil {
		if err := database.Close(e.db); err != nil {
			e.Log.Errorw("failed to close database", "error", err)
		}
		e.db = nil
	}
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// MapEnvToGinMode picks the gin mode for an environment name.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
