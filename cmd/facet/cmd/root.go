// Package cmd implements the facet CLI commands.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var logger = log.New(os.Stderr)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Facet - declarative component tooling",
	Long: `Facet is a foundation for declaratively configured components: typed
attribute reflection, responsive values, and explicit composition.

The facet CLI scaffolds projects and statically validates component
manifests against the same rules the runtime applies at definition time.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
