package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/infrastructure/migration"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/hotline-inc/hotline/internal/interfaces/http"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Hotline HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.Config
	log := e.Log

	log.Infow("starting server",
		"environment", e.Name,
		"mode", cfg.Server.Mode,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := e.OpenDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := handleMigrations(ctx, gdb, e); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(ctx, gdb, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	container.SetupRoutes()
	container.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server starting",
			"address", srv.Addr,
			"timezone", container.Normalizer().Location().String())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(ctx context.Context, gdb *gorm.DB, e *bootstrap.Env) error {
	log := e.Log
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	m, err := migration.NewMigrator(gdb, e.Config.Database.Driver, log)
	if err != nil {
		return err
	}

	if autoMigrate {
		if e.Name == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		log.Infow("running auto-migration")
		if err := m.Up(ctx); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	logMigrationState(ctx, m, log)
	return nil
}

func logMigrationState(ctx context.Context, m *migration.Migrator, log logger.Interface) {
	version, err := m.Version(ctx)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return
	}

	pending, err := m.HasPending(ctx)
	if err != nil {
		log.Warnw("failed to check pending migrations", "error", err)
		return
	}
	if pending {
		log.Warnw("database has pending migrations, run `hotline migrate up`", "version", version)
		return
	}
	log.Infow("current migration version", "version", version)
}
