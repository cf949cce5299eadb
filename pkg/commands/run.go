package commands

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"ResultAggregator/pkg/document"
	"ResultAggregator/pkg/exporting"
	"ResultAggregator/pkg/graphing"
	"ResultAggregator/pkg/results"
	"ResultAggregator/pkg/running"
)

const walkSteps = 64

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Aliases: []string{"r"},
		Use:     "run [flags]",
		Short:   "Execute a demo shot run and write the merged result document",
		Long: `Run a demo Monte Carlo random walk: every shot executes independently
on a worker pool, each worker accumulates into its own result container,
and the containers are merged into one document at the end.

Example:
  resagg run -n 4096 -w 8 --export-records -f parquet -g`,
		RunE: runRun,
	}

	Cfg.AddRunFlags(cmd)
	Cfg.AddOutputFlags(cmd)
	Cfg.AddExportFlags(cmd)
	Cfg.AddGraphFlags(cmd)
	Cfg.AddRunIDFlags(cmd)

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	Cfg.ApplyDefaults()
	if err := Cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("Run %s: %d shots on %d workers", Cfg.RunID, Cfg.Shots, Cfg.Workers)

	runner := running.NewRunner[results.Scalar](Cfg.Shots)
	runner.Workers = Cfg.Workers

	seed := Cfg.Seed
	variance := Cfg.Variance
	start := time.Now()
	agg, err := runner.Run(cmd.Context(), func(shot int, rec *results.Container[results.Scalar]) {
		simulateWalk(shot, seed, variance, rec)
	})
	if err != nil {
		return fmt.Errorf("shot run failed: %w", err)
	}
	elapsed := time.Since(start)

	agg.SetExtra("shots", results.Scalar(Cfg.Shots))
	agg.SetExtra("seed", results.Scalar(seed))

	doc := document.New()
	doc.Set("metadata", runMetadata(elapsed))
	if err := agg.WriteTo(doc); err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	docPath := Cfg.DocumentPath()
	if err := doc.WriteFile(docPath); err != nil {
		return err
	}
	log.Printf("Result document written to: %s (%v)", docPath, elapsed)

	if Cfg.ExportRecords {
		exportPath := Cfg.ExportPath(docPath)
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
	}

	if Cfg.GenerateGraphs {
		graphPath := Cfg.GraphPath(docPath)
		gen, err := graphing.NewGenerator(docPath, graphPath)
		if err != nil {
			log.Printf("Warning: failed to create graph generator: %v", err)
		} else if err := gen.GenerateFromDocument(doc); err != nil {
			log.Printf("Warning: failed to generate graphs: %v", err)
		} else {
			log.Printf("Graphs written to: %s", graphPath)
		}
	}

	return nil
}

// simulateWalk runs one shot of a 1D random walk and records its results:
// the final position pershot, and running averages of the position at a few
// checkpoints plus the final distance from the origin.
func simulateWalk(shot int, seed int64, variance bool, rec *results.Container[results.Scalar]) {
	rng := rand.New(rand.NewSource(seed + int64(shot)))

	position := 0
	for step := 1; step <= walkSteps; step++ {
		if rng.Intn(2) == 0 {
			position--
		} else {
			position++
		}
		if step%16 == 0 {
			memory := fmt.Sprintf("%d", step)
			rec.AddAverage("statistics", "position", memory, results.Scalar(position), variance)
		}
	}

	rec.AddPershot("walk", "final", results.Scalar(position))
	rec.AddAverage("statistics", "distance", fmt.Sprintf("%d", walkSteps),
		results.Scalar(math.Abs(float64(position))), variance)
}

// runMetadata collects run identification and process resource usage for the
// document's metadata section. Metadata is document-level, not container
// content, so sibling containers never overwrite it.
func runMetadata(elapsed time.Duration) map[string]interface{} {
	meta := map[string]interface{}{
		"runId":      Cfg.RunID,
		"hostname":   Cfg.Hostname,
		"workers":    Cfg.Workers,
		"durationMs": elapsed.Milliseconds(),
	}

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		meta["maxRssBytes"] = ru.Maxrss * 1024
		meta["userTimeUs"] = int64(ru.Utime.Sec)*1_000_000 + int64(ru.Utime.Usec)
		meta["systemTimeUs"] = int64(ru.Stime.Sec)*1_000_000 + int64(ru.Stime.Usec)
	}
	return meta
}
