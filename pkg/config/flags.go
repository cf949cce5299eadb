package config

import (
	"github.com/spf13/cobra"
)

// AddRunFlags adds shot execution flags to a command.
func (c *Config) AddRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVarP(&c.Shots, "shots", "n", c.Shots, "Number of shots to execute")
	flags.IntVarP(&c.Workers, "workers", "w", c.Workers, "Number of worker goroutines")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (time-based if unset)")
	flags.BoolVar(&c.Variance, "variance", c.Variance, "Track variances in average snapshots")
}

// AddOutputFlags adds result document output flags to a command.
func (c *Config) AddOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&c.OutputDir, "output-dir", "o", c.OutputDir, "Output directory")
	flags.StringVar(&c.OutputName, "output", c.OutputName, "Result document path (auto-generated if empty)")
}

// AddExportFlags adds flat export flags to a command.
func (c *Config) AddExportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&c.ExportRecords, "export-records", c.ExportRecords, "Also write a flattened record table")
	flags.StringVarP(&c.ExportFormat, "format", "f", c.ExportFormat, "Export format (jsonl, csv, tsv, parquet)")
	flags.StringVar(&c.ExportName, "export", c.ExportName, "Export file path (auto-generated if empty)")
	flags.StringVar(&c.ExportMode, "mode", c.ExportMode, "Snapshot namespaces to export (all, pershot, averages)")
}

// AddGraphFlags adds graph generation flags to a command.
func (c *Config) AddGraphFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&c.GenerateGraphs, "graphs", "g", c.GenerateGraphs, "Generate an HTML chart report")
	flags.StringVar(&c.GraphOutput, "graph-output", c.GraphOutput, "Graph output file (auto-generated if empty)")
}

// AddRunIDFlags adds run identification flags to a command.
func (c *Config) AddRunIDFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&c.RunID, "run-id", c.RunID, "Run identifier (auto-generated if empty)")
	flags.StringVar(&c.Hostname, "hostname", c.Hostname, "Hostname override")
}
