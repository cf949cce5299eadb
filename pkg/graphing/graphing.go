// Package graphing renders an HTML chart report from a result document.
package graphing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/components"

	"ResultAggregator/pkg/document"
	"ResultAggregator/pkg/exporting"
)

// Generator creates an HTML report from a result document file.
type Generator struct {
	inputPath  string
	outputPath string
}

// NewGenerator creates a graph generator.
func NewGenerator(inputPath, outputPath string) (*Generator, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if outputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	return &Generator{
		inputPath:  inputPath,
		outputPath: outputPath,
	}, nil
}

// Generate loads the document, builds one chart per snapshot series, and
// writes a single HTML page.
func (g *Generator) Generate() error {
	doc, err := document.Load(g.inputPath)
	if err != nil {
		return fmt.Errorf("failed to load result document: %w", err)
	}
	return g.GenerateFromDocument(doc)
}

// GenerateFromDocument renders charts for an already-loaded document.
func (g *Generator) GenerateFromDocument(doc document.Document) error {
	pershotRows := exporting.FlattenDocument(doc, exporting.FlattenPershot)
	averageRows := exporting.FlattenDocument(doc, exporting.FlattenAverages)

	page := components.NewPage()
	page.PageTitle = "Aggregated results"

	charts := 0
	for _, s := range buildPershotSeries(pershotRows) {
		page.AddCharts(createSeriesLineChart(s))
		charts++
	}
	for _, b := range buildAverageBars(averageRows) {
		page.AddCharts(createAverageBarChart(b))
		charts++
	}
	if charts == 0 {
		return fmt.Errorf("document contains no snapshot data to chart")
	}

	dir := filepath.Dir(g.outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(g.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}
