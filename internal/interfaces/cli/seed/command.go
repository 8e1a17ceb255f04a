// Package seed loads saved-field suggestions from a YAML file.
package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotline-inc/hotline/internal/infrastructure/cache"
	"github.com/hotline-inc/hotline/internal/infrastructure/persistence/seeds"
	"github.com/hotline-inc/hotline/internal/infrastructure/repository"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/hotline-inc/hotline/internal/interfaces/http"
)

var (
	env        string
	configPath string
	file       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed saved-field suggestions",
		Long:  `Insert callers, reasons and tags from a YAML file into the saved-field store. Existing values are kept.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	values, err := seeds.ParseSavedFields(f)
	if err != nil {
		return err
	}

	e, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	gdb, err := e.OpenDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	added, err := seeds.SeedSavedFields(ctx, repository.NewSavedFieldRepository(gdb), values)
	if err != nil {
		return fmt.Errorf("seeding failed after %d value(s): %w", added, err)
	}

	// Running servers cache the listing in Redis.
	if e.Config.Redis.Enabled {
		client, err := httpRouter.InitRedis(ctx, e.Config, e.Log)
		if err != nil {
			e.Log.Warnw("seeded values may be hidden until the saved field cache expires", "error", err)
		} else {
			defer client.Close()
			if err := cache.NewRedisSavedFieldCache(client, cache.DefaultSavedFieldTTL, e.Log).Invalidate(ctx); err != nil {
				e.Log.Warnw("failed to invalidate saved field cache", "error", err)
			}
		}
	}

	e.Log.Infow("saved fields seeded", "file", file, "added", added)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d saved field(s)\n", added)
	return nil
}
