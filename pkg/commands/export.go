package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"ResultAggregator/pkg/document"
	"ResultAggregator/pkg/exporting"
)

// NewExportCmd creates the export subcommand.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"e"},
		Use:     "export [flags] <result.json>",
		Short:   "Flatten a result document into a tabular file",
		Long: `Project the snapshots of a result document into rows and write them
as jsonl, csv, tsv, or parquet.

Example:
  resagg export -f parquet --mode pershot result.json`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	Cfg.AddExportFlags(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	Cfg.ApplyDefaults()

	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	exportPath := Cfg.ExportPath(args[0])
	exp, err := exporting.NewExporter(exportPath, Cfg.ExportFormat,
		exporting.WithFlattenMode(Cfg.FlattenMode()))
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}
	if err := exp.WriteDocument(doc); err != nil {
		exp.Close()
		return fmt.Errorf("failed to export records: %w", err)
	}
	if err := exp.Close(); err != nil {
		return fmt.Errorf("failed to close exporter: %w", err)
	}

	log.Printf("Records written to: %s", exp.Path())
	return nil
}
