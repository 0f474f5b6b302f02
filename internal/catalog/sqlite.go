// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/apexdict/pkg/types"
)

// argumentsTable is the catalog table in a SQLite snapshot. It carries the
// same ten columns as the CSV export.
const argumentsTable = "apex_arguments"

// SQLiteSource reads catalog rows from a SQLite snapshot of the export.
// Rows come back ordered by rowid, which preserves the export's insertion
// order the same way reading the CSV top to bottom does.
type SQLiteSource struct {
	// Path is the SQLite database file location.
	Path string
}

// Rows reads every row of the apex_arguments table. SQLite is loosely
// typed, so all columns are scanned as nullable text and pass through the
// same per-row validation as the CSV source.
func (s *SQLiteSource) Rows(ctx context.Context, w io.Writer) ([]types.Row, ReadStats, error) {
	// sql.Open would create an empty database at a bad path; surface a
	// missing snapshot as the read error it is.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, ReadStats{}, fmt.Errorf("opening catalog database %s: %w", s.Path, err)
	}

	db, err := sql.Open("sqlite3", s.Path+"?mode=ro")
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("opening catalog database %s: %w", s.Path, err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY rowid`,
		ColPackageName, ColAlias, ColProcedureName, ColSubprogramType, ColReturnType,
		ColArgumentName, ColDataType, ColInOut, ColDefaultValue, ColPosition,
		argumentsTable,
	)

	dbRows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("querying %s: %w", argumentsTable, err)
	}
	defer dbRows.Close()

	var (
		rows  []types.Row
		stats ReadStats
	)
	for n := 1; dbRows.Next(); n++ {
		var pkg, alias, proc, kind, ret, arg, dataType, inOut, def, pos sql.NullString
		if err := dbRows.Scan(&pkg, &alias, &proc, &kind, &ret, &arg, &dataType, &inOut, &def, &pos); err != nil {
			return nil, stats, fmt.Errorf("scanning %s row: %w", argumentsTable, err)
		}

		row := types.Row{
			PackageName:    pkg.String,
			Alias:          alias.String,
			ProcedureName:  proc.String,
			SubprogramType: kind.String,
			ReturnType:     ret.String,
			ArgumentName:   arg.String,
			DataType:       dataType.String,
			InOut:          inOut.String,
			DefaultValue:   def.String,
		}

		if !rowValid(row) {
			fmt.Fprintf(w, "skipped row %d: missing package name, alias, or procedure name\n", n)
			stats.Skipped++
			continue
		}

		position, ok := parsePosition(pos.String)
		if !ok {
			fmt.Fprintf(w, "skipped row %d: non-numeric POSITION %q\n", n, pos.String)
			stats.Skipped++
			continue
		}
		row.Position = position

		rows = append(rows, row)
		stats.Read++
	}
	if err := dbRows.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading %s: %w", argumentsTable, err)
	}

	return rows, stats, nil
}
