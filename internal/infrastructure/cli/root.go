package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "burndown",
	Version: Version,
	Short:   "Track project scope and derive burndown statistics",
	Long: `Burndown tracks a project's scope in story points, records dated
progress updates, and derives burndown statistics from them:
ideal vs. actual remaining work, completion percentage, and
estimate-vs-actual variance.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
