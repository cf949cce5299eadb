package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ResultAggregator/pkg/document"
	"ResultAggregator/pkg/exporting"
)

// NewInspectCmd creates the inspect subcommand.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Aliases: []string{"i"},
		Use:     "inspect <result.json>",
		Short:   "Summarize a result document",
		Args:    cobra.ExactArgs(1),
		RunE:    runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Document: %s\n", args[0])

	for _, key := range doc.Keys() {
		if key == "snapshots" {
			continue
		}
		v, _ := doc.Get(key)
		fmt.Fprintf(out, "  %-16s %v\n", key, summarizeValue(v))
	}

	snapsVal, ok := doc.Get("snapshots")
	if !ok {
		fmt.Fprintln(out, "  (no snapshots)")
		return nil
	}
	snaps, _ := snapsVal.(document.Document)
	fmt.Fprintln(out, "  snapshots:")
	for _, typ := range snaps.Keys() {
		fragment, _ := snaps.Get(typ)
		fmt.Fprintf(out, "    %-14s %s\n", typ, summarizeFragment(fragment))
	}
	fmt.Fprintf(out, "  rows: %d pershot, %d average\n",
		len(exporting.FlattenDocument(doc, exporting.FlattenPershot)),
		len(exporting.FlattenDocument(doc, exporting.FlattenAverages)))
	return nil
}

func summarizeValue(v interface{}) string {
	switch val := v.(type) {
	case document.Document:
		return fmt.Sprintf("(%d entries)", len(val))
	case map[string]interface{}:
		return fmt.Sprintf("(%d entries)", len(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func summarizeFragment(fragment interface{}) string {
	m, ok := fragment.(document.Document)
	if !ok {
		return summarizeValue(fragment)
	}
	labels := m.Keys()
	total := 0
	for _, label := range labels {
		if seq, ok := m[label].([]interface{}); ok {
			total += len(seq)
		}
	}
	return fmt.Sprintf("%d labels, %d entries", len(labels), total)
}
