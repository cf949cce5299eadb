package exporting

import (
	"fmt"
	"os"
	"path/filepath"

	"ResultAggregator/pkg/document"
)

// Exporter writes flattened result records to one output file.
type Exporter struct {
	path        string
	format      string
	writer      Writer
	flattenMode FlattenMode
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithFlattenMode selects which snapshot namespaces WriteDocument exports.
func WithFlattenMode(mode FlattenMode) ExporterOption {
	return func(e *Exporter) {
		e.flattenMode = mode
	}
}

// NewExporter creates an exporter for the given path and format.
func NewExporter(path, format string, opts ...ExporterOption) (*Exporter, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, ok := Get(format)
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	writer := f.NewWriter()
	if err := writer.Init(path); err != nil {
		return nil, fmt.Errorf("failed to initialize writer: %w", err)
	}

	e := &Exporter{
		path:        path,
		format:      format,
		writer:      writer,
		flattenMode: FlattenAll,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Path returns the output file path.
func (e *Exporter) Path() string {
	return e.path
}

// Format returns the output format name.
func (e *Exporter) Format() string {
	return e.format
}

// Write writes a single record.
func (e *Exporter) Write(record Record) error {
	return e.writer.Write(record)
}

// WriteDocument flattens a result document and writes all of its rows.
func (e *Exporter) WriteDocument(doc document.Document) error {
	for i, r := range FlattenDocument(doc, e.flattenMode) {
		if err := e.writer.Write(r); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return nil
}

// Flush ensures all buffered data is written.
func (e *Exporter) Flush() error {
	return e.writer.Flush()
}

// Close finalizes and closes the exporter.
func (e *Exporter) Close() error {
	return e.writer.Close()
}
