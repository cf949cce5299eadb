package commands

import (
	"log"

	"github.com/spf13/cobra"

	"ResultAggregator/pkg/graphing"
)

// NewGraphCmd creates the graph subcommand.
func NewGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"g"},
		Use:     "graph [flags] <result.json>",
		Short:   "Render HTML charts from a result document",
		Args:    cobra.ExactArgs(1),
		RunE:    runGraph,
	}

	Cfg.AddGraphFlags(cmd)

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	graphPath := Cfg.GraphPath(args[0])

	gen, err := graphing.NewGenerator(args[0], graphPath)
	if err != nil {
		return err
	}
	if err := gen.Generate(); err != nil {
		return err
	}

	log.Printf("Graphs written to: %s", graphPath)
	return nil
}
