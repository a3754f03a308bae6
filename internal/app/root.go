package app

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool

	// RootCmd is the root command for claudepack
	RootCmd = &cobra.Command{
		Use:   "claudepack",
		Short: "Repackage Claude Desktop as a native Debian package",
		Long: `claudepack downloads the official Claude Desktop installer for Windows,
extracts the application bundle, replaces the Windows-only native module
with a Linux-compatible stub, and builds an installable .deb package.

The pipeline runs in a scratch workspace that is recreated from scratch on
every run; there is no resume of a partial build.

Quick Start:
  1. claudepack doctor   # check the host environment
  2. claudepack build    # download, repackage, and build the .deb
  3. claudepack logs -f  # follow the app's runtime log after install

Examples:
  # Build the package and get prompted to install it
  claudepack build

  # Build without the install prompt
  claudepack build --no-install

  # Keep the scratch workspace around for inspection
  claudepack build --keep-workspace

  # Show past builds
  claudepack history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
