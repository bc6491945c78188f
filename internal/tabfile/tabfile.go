// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabfile parses tab-separated Epic export files: a header line
// followed by one data line per report fragment. Parsing never fails on
// malformed rows; field-count mismatches are reconciled and reported as
// warnings.
package tabfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/epic-export/pkg/types"
)

// Parse splits data into rows keyed by the header line. name is used only in
// warning messages, which are written to warn. The header's column names are
// returned alongside the rows so the caller can accumulate column order
// across files.
//
// A file with fewer than two lines yields no rows and a skip warning. Data
// lines with fewer values than the header are padded with empty strings;
// lines with more values are truncated. Neither condition drops the row.
func Parse(name string, data []byte, warn io.Writer) ([]types.Row, []string) {
	lines := splitLines(string(data))
	if len(lines) < 2 {
		fmt.Fprintf(warn, "warning: %s has fewer than 2 lines, skipping\n", name)
		return nil, nil
	}

	header := strings.Split(lines[0], "\t")

	var rows []types.Row
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, "\t")

		if len(values) != len(header) {
			fmt.Fprintf(warn, "warning: %s line %d has %d headers but %d values\n",
				name, i+2, len(header), len(values))
			if len(values) < len(header) {
				padded := make([]string, len(header))
				copy(padded, values)
				values = padded
			} else {
				values = values[:len(header)]
			}
		}

		row := make(types.Row, len(header))
		for j, h := range header {
			row[h] = values[j]
		}
		rows = append(rows, row)
	}

	return rows, header
}

// splitLines splits s on newlines, trimming a trailing carriage return from
// each line. A trailing newline does not produce a final empty line, so the
// line count matches what a line-oriented reader would report.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
