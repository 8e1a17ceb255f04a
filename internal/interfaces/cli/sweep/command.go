// Package sweep runs the archival sweep once from the command line.
package sweep

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hotline-inc/hotline/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/hotline-inc/hotline/internal/interfaces/http"
)

var (
	env        string
	configPath string
	maxAge     time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Archive expired tickets once",
		Long:  `Archive every active ticket older than archive.max_age, then exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Override archive.max_age for this run")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	if maxAge > 0 {
		e.Config.Archive.MaxAge = maxAge
	}
	// The one-shot run never starts the scheduler.
	e.Config.Archive.Enabled = false

	gdb, err := e.OpenDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	container, err := httpRouter.NewContainer(ctx, gdb, e.Config, e.Log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	e.Log.Infow("running archive sweep", "max_age", e.Config.Archive.MaxAge)

	archived, err := container.ArchiveSweeper().Execute(ctx)
	if err != nil {
		return fmt.Errorf("archive sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d ticket(s)\n", archived)
	return nil
}
