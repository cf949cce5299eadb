// Package config provides configuration management for the aggregator CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"ResultAggregator/pkg/exporting"
)

// Config holds all CLI configuration options.
type Config struct {
	// Run settings
	Shots    int
	Workers  int
	Seed     int64
	Variance bool

	// Output settings
	OutputDir  string
	OutputName string

	// Export settings
	ExportRecords bool
	ExportFormat  string
	ExportName    string
	ExportMode    string

	// Graph settings
	GenerateGraphs bool
	GraphOutput    string

	// Run identification
	RunID    string
	Hostname string
}

// Default configuration values.
const (
	DefaultShots        = 1024
	DefaultOutputDir    = "."
	DefaultExportFormat = "jsonl"
	DefaultExportMode   = "all"
)

// New creates a Config with default values.
func New() *Config {
	hostname, _ := os.Hostname()

	return &Config{
		Shots:        DefaultShots,
		Workers:      runtime.GOMAXPROCS(0),
		Seed:         time.Now().UnixNano(),
		Variance:     true,
		OutputDir:    DefaultOutputDir,
		ExportFormat: DefaultExportFormat,
		ExportMode:   DefaultExportMode,
		RunID:        uuid.NewString(),
		Hostname:     hostname,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Shots < 1 {
		return fmt.Errorf("shots must be at least 1, got %d", c.Shots)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if _, ok := exporting.Get(c.ExportFormat); !ok {
		return fmt.Errorf("invalid export format: %s (valid: %v)", c.ExportFormat, exporting.ValidFormats())
	}
	if !isValidExportMode(c.ExportMode) {
		return fmt.Errorf("invalid export mode: %s (valid: all, pershot, averages)", c.ExportMode)
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("cannot access output directory: %w", err)
			}
		} else if !info.IsDir() {
			return fmt.Errorf("output path is not a directory: %s", c.OutputDir)
		}
	}
	return nil
}

// ApplyDefaults fills in any missing values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Shots == 0 {
		c.Shots = DefaultShots
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.ExportFormat == "" {
		c.ExportFormat = DefaultExportFormat
	}
	if c.ExportMode == "" {
		c.ExportMode = DefaultExportMode
	}
	if c.RunID == "" {
		c.RunID = uuid.NewString()
	}
	if c.Hostname == "" {
		c.Hostname, _ = os.Hostname()
	}
}

// FlattenMode maps the configured export mode onto the exporting layer.
func (c *Config) FlattenMode() exporting.FlattenMode {
	switch c.ExportMode {
	case "pershot":
		return exporting.FlattenPershot
	case "averages":
		return exporting.FlattenAverages
	default:
		return exporting.FlattenAll
	}
}

func isValidExportMode(mode string) bool {
	switch mode {
	case "all", "pershot", "averages":
		return true
	}
	return false
}

// DocumentPath returns the output path for the result document.
func (c *Config) DocumentPath() string {
	if c.OutputName != "" {
		return c.OutputName
	}
	timestamp := time.Now().Format("20060102-150405")
	return filepath.Join(c.OutputDir, fmt.Sprintf("result-%s.json", timestamp))
}

// ExportPath returns the output path for the flattened export table.
func (c *Config) ExportPath(documentPath string) string {
	if c.ExportName != "" {
		return c.ExportName
	}
	ext := exporting.GetExtension(c.ExportFormat)
	return trimExt(documentPath) + "_records" + ext
}

// GraphPath returns the output path for the HTML chart report.
func (c *Config) GraphPath(documentPath string) string {
	if c.GraphOutput != "" {
		return c.GraphOutput
	}
	return trimExt(documentPath) + "_graphs.html"
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
