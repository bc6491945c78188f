// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a conversion run: scan the input directory, load
// rows from every matched file, consolidate report fragments unless merge is
// disabled, and write the output file. The whole batch is held in memory and
// processed on a single goroutine.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/epic-export/internal/export"
	"github.com/pdiddy/epic-export/internal/merge"
	"github.com/pdiddy/epic-export/internal/tabfile"
	"github.com/pdiddy/epic-export/pkg/types"
)

// defaultPattern matches Epic export files when no pattern is configured.
const defaultPattern = "*.txt"

// Options configures a conversion run.
type Options struct {
	// InputDir is the directory scanned for export files.
	InputDir string

	// OutputPath determines both destination and format (by extension).
	OutputPath string

	// Config carries pattern, merge, and output settings.
	Config types.ConvertConfig
}

// Summary holds counts from a conversion run.
type Summary struct {
	Files   int
	Rows    int
	Records int
}

// Run executes a conversion. Warnings and progress lines are written to
// warn; an error return is a fatal condition and means no output was
// produced. Per-file problems (unreadable file, too few lines) and per-row
// problems (field-count mismatch) only warn and never abort the batch.
func Run(opts Options, warn io.Writer) (Summary, error) {
	var summary Summary

	// Reject an unsupported output extension before reading any input.
	if _, err := export.ForPath(opts.OutputPath); err != nil {
		return summary, err
	}

	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return summary, fmt.Errorf("input directory %s: %w", opts.InputDir, err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("%s is not a directory", opts.InputDir)
	}

	pattern := opts.Config.Pattern
	if pattern == "" {
		pattern = defaultPattern
	}
	files, err := filepath.Glob(filepath.Join(opts.InputDir, pattern))
	if err != nil {
		return summary, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("no files matching %q in %s", pattern, opts.InputDir)
	}
	sort.Strings(files)

	fmt.Fprintf(warn, "Processing %d files...\n", len(files))

	columns := types.NewColumnSet()
	var rows []types.Row
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(warn, "warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		fileRows, header := tabfile.Parse(filepath.Base(path), data, warn)
		columns.Add(header...)
		rows = append(rows, fileRows...)
		summary.Files++
	}
	summary.Rows = len(rows)
	fmt.Fprintf(warn, "Loaded %d rows from %d files\n", summary.Rows, summary.Files)

	if len(rows) == 0 {
		return summary, fmt.Errorf("no rows loaded from %s", opts.InputDir)
	}

	records := rows
	if !opts.Config.NoMerge {
		cfg := opts.Config.Merge.Normalized()
		records = merge.Consolidate(rows, cfg)
		columns.Remove(cfg.LineField)
		columns.Remove(cfg.SubLineField)
		fmt.Fprintf(warn, "Merged %d rows into %d consolidated reports\n", len(rows), len(records))
	}
	summary.Records = len(records)

	if err := export.Write(opts.OutputPath, records, columns, opts.Config.Compact); err != nil {
		return summary, err
	}

	fmt.Fprintf(warn, "Wrote %d records to %s\n", summary.Records, opts.OutputPath)
	return summary, nil
}
