package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hotline-inc/hotline/internal/interfaces/cli/migrate"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/seed"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/server"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/sweep"
	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hotline",
		Short:   "Hotline - support call ticketing",
		Long:    `Hotline records support calls as tickets, keeps their message threads and archives them once they expire.`,
		Version: version.String(),
		// failures are reported once through the console logger below
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.NewConsole().Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
