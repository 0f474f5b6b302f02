// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/apexdict/pkg/types"
)

// CSVSource reads catalog rows from a CSV export with a header row.
type CSVSource struct {
	// Path is the CSV file location.
	Path string
}

// Rows reads the whole CSV file. The header must name at least the
// PACKAGE_NAME, ALIAS, and PROCEDURE_NAME columns; the other columns are
// optional and default to empty when absent.
func (s *CSVSource) Rows(ctx context.Context, w io.Writer) ([]types.Row, ReadStats, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("opening catalog export %s: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled by the row policy, not the codec

	header, err := r.Read()
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("reading header of %s: %w", s.Path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{ColPackageName, ColAlias, ColProcedureName} {
		if _, ok := cols[required]; !ok {
			return nil, ReadStats{}, fmt.Errorf("%s: header is missing required column %s", s.Path, required)
		}
	}

	var (
		rows  []types.Row
		stats ReadStats
	)
	for line := 2; ; line++ {
		select {
		case <-ctx.Done():
			return rows, stats, ctx.Err()
		default:
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading %s: %w", s.Path, err)
		}

		field := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		row := types.Row{
			PackageName:    field(ColPackageName),
			Alias:          field(ColAlias),
			ProcedureName:  field(ColProcedureName),
			SubprogramType: field(ColSubprogramType),
			ReturnType:     field(ColReturnType),
			ArgumentName:   field(ColArgumentName),
			DataType:       field(ColDataType),
			InOut:          field(ColInOut),
			DefaultValue:   field(ColDefaultValue),
		}

		if !rowValid(row) {
			fmt.Fprintf(w, "skipped line %d: missing package name, alias, or procedure name\n", line)
			stats.Skipped++
			continue
		}

		pos, ok := parsePosition(field(ColPosition))
		if !ok {
			fmt.Fprintf(w, "skipped line %d: non-numeric POSITION %q\n", line, field(ColPosition))
			stats.Skipped++
			continue
		}
		row.Position = pos

		rows = append(rows, row)
		stats.Read++
	}

	return rows, stats, nil
}
