// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/epic-export/pkg/types"
)

// recordsTable is the table holding converted records in SQLite output.
const recordsTable = "records"

// WriteSQLite writes records to a SQLite database at path: one TEXT column
// per output column, one row per record, inserted in a single transaction.
// An existing database file is replaced.
func WriteSQLite(path string, records []types.Row, columns *types.ColumnSet) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing existing database: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	names := columns.Names()
	if len(names) == 0 {
		return fmt.Errorf("no columns to write to %s", path)
	}

	quoted := make([]string, len(names))
	decls := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
		decls[i] = quoted[i] + " TEXT"
	}

	schema := fmt.Sprintf("CREATE TABLE %s (%s)", recordsTable, strings.Join(decls, ", "))
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating %s table: %w", recordsTable, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		recordsTable, strings.Join(quoted, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(names))
	for _, row := range records {
		for i, n := range names {
			args[i] = row[n]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}
	return nil
}

// quoteIdent quotes a column name for SQL, doubling embedded quotes. Export
// headers are arbitrary text and cannot be trusted as bare identifiers.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
