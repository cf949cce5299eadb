// Package commands provides CLI command implementations.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"ResultAggregator/pkg/config"
)

// Cfg is the shared configuration instance.
var Cfg = config.New()

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resagg",
		Short: "Shot-result aggregation engine",
		Long: `ResultAggregator merges the partial outputs of many independent
simulation shots into one aggregate result document.

Commands:
  run        Execute a demo shot run and write the merged result document
  export     Flatten a result document into a tabular file
  graph      Render HTML charts from a result document
  inspect    Summarize a result document`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewRunCmd(),
		NewExportCmd(),
		NewGraphCmd(),
		NewInspectCmd(),
	)

	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
