// Package migrate implements the "hotline migrate" command group.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hotline-inc/hotline/internal/infrastructure/migration"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/bootstrap"
)

type options struct {
	env        string
	configPath string
}

// open loads the environment and a migrator over its database. Callers
// close the returned Env.
func (o *options) open(ctx context.Context) (*bootstrap.Env, *migration.Migrator, error) {
	e, err := bootstrap.Load(o.env, o.configPath)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := e.OpenDatabase(ctx)
	if err != nil {
		e.Close()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	m, err := migration.NewMigrator(gdb, e.Config.Database.Driver, e.Log)
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return e, m, nil
}

func NewCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  `Apply, roll back and inspect the embedded schema migrations of the configured database, or scaffold a new one.`,
	}
	cmd.PersistentFlags().StringVarP(&o.env, "env", "e", "development", "environment name (development, test, production)")
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "config file (default ./configs/config.yaml)")

	cmd.AddCommand(upCommand(o), downCommand(o), statusCommand(o), createCommand(o))
	return cmd
}

func upCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, m, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			e.Log.Infow("applying migrations", "environment", e.Name, "driver", e.Config.Database.Driver)
			if err := m.Up(ctx); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			e.Log.Infow("schema is up to date")
			return nil
		},
	}
}

func downCommand(o *options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			ctx := cmd.Context()
			e, m, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			e.Log.Infow("rolling back migrations", "environment", e.Name, "steps", steps)
			if err := m.Down(ctx, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "how many migrations to roll back")
	return cmd
}

func statusCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the schema version and every migration's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, m, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			current, err := m.Version(ctx)
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			statuses, err := m.Status(ctx)
			if err != nil {
				return fmt.Errorf("read migration status: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Environment:     %s\n", e.Name)
			fmt.Fprintf(out, "Driver:          %s\n", e.Config.Database.Driver)
			fmt.Fprintf(out, "Current Version: %d\n\n", current)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
			for _, s := range statuses {
				applied := "-"
				if !s.AppliedAt.IsZero() {
					applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, filepath.Base(s.Source.Path))
			}
			return tw.Flush()
		},
	}
}

func createCommand(o *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scaffold an SQL migration for the configured driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap.Load(o.env, o.configPath)
			if err != nil {
				return err
			}
			defer e.Close()

			dir := migration.ScriptsDir(e.Config.Database.Driver)
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("scripts directory %s not found, run from the repository root: %w", dir, err)
			}
			if err := migration.Create(dir, name); err != nil {
				return fmt.Errorf("create migration %s: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration %q created in %s\n", name, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "migration name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
