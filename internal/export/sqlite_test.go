// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pdiddy/epic-export/pkg/types"
)

func readRecords(t *testing.T, path string) []map[string]string {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT * FROM records")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		t.Fatal(err)
	}

	var out []map[string]string
	for rows.Next() {
		values := make([]string, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			t.Fatal(err)
		}
		rec := make(map[string]string, len(cols))
		for i, c := range cols {
			rec[c] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestWriteSQLite(t *testing.T) {
	records := []types.Row{
		{"MRN": "10001", "date": "2024-01-15", "ValueText": "first\nsecond"},
		{"MRN": "10002", "date": "2024-01-16"},
	}
	columns := types.NewColumnSet("MRN", "date", "ValueText")
	path := filepath.Join(t.TempDir(), "out.db")

	if err := WriteSQLite(path, records, columns); err != nil {
		t.Fatal(err)
	}

	got := readRecords(t, path)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0]["MRN"] != "10001" || got[0]["ValueText"] != "first\nsecond" {
		t.Errorf("first record = %v", got[0])
	}
	if got[1]["ValueText"] != "" {
		t.Errorf("missing column should read as empty string, got %q", got[1]["ValueText"])
	}
}

func TestWriteSQLite_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")
	columns := types.NewColumnSet("MRN")

	if err := WriteSQLite(path, []types.Row{{"MRN": "1"}, {"MRN": "2"}}, columns); err != nil {
		t.Fatal(err)
	}
	if err := WriteSQLite(path, []types.Row{{"MRN": "3"}}, columns); err != nil {
		t.Fatal(err)
	}

	got := readRecords(t, path)
	if len(got) != 1 {
		t.Fatalf("got %d records after rewrite, want 1", len(got))
	}
	if got[0]["MRN"] != "3" {
		t.Errorf("record = %v", got[0])
	}
}

func TestWriteSQLite_QuotedColumnNames(t *testing.T) {
	// Export headers can contain spaces and punctuation.
	columns := types.NewColumnSet("Specimen Source", `Odd"Name`)
	records := []types.Row{
		{"Specimen Source": "Bone Marrow", `Odd"Name`: "x"},
	}
	path := filepath.Join(t.TempDir(), "out.db")

	if err := WriteSQLite(path, records, columns); err != nil {
		t.Fatal(err)
	}

	got := readRecords(t, path)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0]["Specimen Source"] != "Bone Marrow" {
		t.Errorf("record = %v", got[0])
	}
	if got[0][`Odd"Name`] != "x" {
		t.Errorf("record = %v", got[0])
	}
}
