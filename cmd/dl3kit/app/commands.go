package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gammasky/dl3kit/cmd/dl3kit/cmd/index"
	"github.com/gammasky/dl3kit/cmd/dl3kit/cmd/irf"
	"github.com/gammasky/dl3kit/cmd/dl3kit/cmd/meta"
	"github.com/gammasky/dl3kit/pkg/constants"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(irf.NewCommand(a))
	rootCmd.AddCommand(meta.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(index.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", constants.AppName, a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
