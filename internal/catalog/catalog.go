// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog reads procedure/function metadata rows from a catalog
// export. Two sources are supported: a CSV file (the usual delivery format)
// and a SQLite snapshot of the same table.
//
// Row validation is lenient and uniform across sources: a row missing one of
// the key fields (package name, alias, procedure name), or carrying a
// non-numeric position, is skipped with a warning line on the progress
// writer and counted in ReadStats. An absent position defaults to 0.
package catalog

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/apexdict/pkg/types"
)

// Column names of the catalog export, in export order.
const (
	ColPackageName    = "PACKAGE_NAME"
	ColAlias          = "ALIAS"
	ColProcedureName  = "PROCEDURE_NAME"
	ColSubprogramType = "SUBPROGRAM_TYPE"
	ColReturnType     = "RETURN_TYPE"
	ColArgumentName   = "ARGUMENT_NAME"
	ColDataType       = "DATA_TYPE"
	ColInOut          = "IN_OUT"
	ColDefaultValue   = "DEFAULT_VALUE"
	ColPosition       = "POSITION"
)

// Source yields catalog rows in input order.
type Source interface {
	// Rows reads every row, writing a warning line to w for each row it
	// skips. The returned slice preserves input order.
	Rows(ctx context.Context, w io.Writer) ([]types.Row, ReadStats, error)
}

// ReadStats holds counts from one read of a catalog source.
type ReadStats struct {
	Read    int
	Skipped int
}

// Total returns the number of rows seen, valid or not.
func (s ReadStats) Total() int {
	return s.Read + s.Skipped
}

// parsePosition converts a POSITION value to an int. An empty value means
// the export carried no position and defaults to 0; anything non-numeric is
// a malformed row.
func parsePosition(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// rowValid reports whether the key fields of a row are all present.
func rowValid(r types.Row) bool {
	return r.PackageName != "" && r.Alias != "" && r.ProcedureName != ""
}
