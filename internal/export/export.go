// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes converted records to CSV, JSON, YAML, or a
// SQLite database. The output format is selected by the output file's
// extension.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/epic-export/pkg/types"
)

// Format identifies an output serialization.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// ForPath maps an output file extension to its Format. Unknown extensions
// are an error; the caller is expected to treat that as fatal before any
// input is read.
func ForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unsupported output format %q: use .csv, .json, .yaml, .db, or .sqlite", filepath.Ext(path))
}

// Write serializes records to path in the format implied by its extension.
// columns supplies the column order for the tabular formats; compact applies
// to JSON only.
func Write(path string, records []types.Row, columns *types.ColumnSet, compact bool) error {
	format, err := ForPath(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return WriteCSV(path, records, columns)
	case FormatJSON:
		return WriteJSON(path, records, compact)
	case FormatYAML:
		return WriteYAML(path, records)
	default:
		return WriteSQLite(path, records, columns)
	}
}

// WriteCSV writes records as CSV with a header row in column order. A row
// missing a column writes the empty string for it.
func WriteCSV(path string, records []types.Row, columns *types.ColumnSet) error {
	names := columns.Names()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(names); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	fields := make([]string, len(names))
	for _, row := range records {
		for i, name := range names {
			fields[i] = row[name]
		}
		if err := w.Write(fields); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes records as a JSON array of objects, indented unless
// compact is set.
func WriteJSON(path string, records []types.Row, compact bool) error {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(records)
	} else {
		data, err = json.MarshalIndent(records, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteYAML writes records as a YAML sequence of mappings.
func WriteYAML(path string, records []types.Row) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
