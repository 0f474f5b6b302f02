// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dictionary turns catalog rows into the completion dictionary
// consumed by the editor extension: rows are filtered by the alias
// allow-list, grouped into packages and procedures in first-seen order,
// deduplicated, and rendered into human-readable call signatures.
package dictionary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/apexdict/internal/allowlist"
	"github.com/pdiddy/apexdict/pkg/types"
)

// Summary holds counts from one dictionary build.
type Summary struct {
	Packages   int
	Procedures int
	Functions  int
}

// ProcedureOnly returns the number of procedures that are not functions.
func (s Summary) ProcedureOnly() int {
	return s.Procedures - s.Functions
}

// argument is one call argument during grouping. Position is 1-based in the
// export; 0 means the export carried none.
type argument struct {
	name      string
	dataType  string
	direction string
	position  int
}

// procedureGroup accumulates one callable's rows.
type procedureGroup struct {
	label      string
	detail     string
	kind       string
	returnType string
	args       []argument
}

// hasArg reports whether an argument with this exact (name, position) pair
// was already collected. Overload variants collapsed onto one procedure key
// repeat their argument rows; later duplicates are discarded, not merged.
func (p *procedureGroup) hasArg(name string, position int) bool {
	for _, a := range p.args {
		if a.name == name && a.position == position {
			return true
		}
	}
	return false
}

// packageGroup accumulates one package's procedures in first-seen order.
type packageGroup struct {
	alias        string
	internalName string
	procOrder    []string
	procs        map[string]*procedureGroup
}

// Build filters rows by the allow-list and groups them into the output
// document. Rows whose alias is not allowed are dropped silently; that is
// the documented filter, not an error. The input order of rows determines
// package and procedure order in the document.
func Build(rows []types.Row, allowed allowlist.AllowList) (types.Dictionary, Summary) {
	var (
		order    []string
		packages = make(map[string]*packageGroup)
	)

	for _, row := range rows {
		if !allowed.Contains(row.Alias) {
			continue
		}

		pkg, ok := packages[row.Alias]
		if !ok {
			// First row for this alias fixes the internal name.
			pkg = &packageGroup{
				alias:        row.Alias,
				internalName: row.PackageName,
				procs:        make(map[string]*procedureGroup),
			}
			packages[row.Alias] = pkg
			order = append(order, row.Alias)
		}

		proc, ok := pkg.procs[row.ProcedureName]
		if !ok {
			kind := strings.ToLower(row.SubprogramType)
			if kind == "" {
				kind = "procedure"
			}
			proc = &procedureGroup{
				label:      fmt.Sprintf("%s.%s", pkg.alias, row.ProcedureName),
				detail:     fmt.Sprintf("%s.%s", pkg.internalName, row.ProcedureName),
				kind:       kind,
				returnType: row.ReturnType,
			}
			pkg.procs[row.ProcedureName] = proc
			pkg.procOrder = append(pkg.procOrder, row.ProcedureName)
		}

		if row.ArgumentName == "" {
			continue
		}
		if proc.hasArg(row.ArgumentName, row.Position) {
			continue
		}
		direction := row.InOut
		if direction == "" {
			direction = "IN"
		}
		proc.args = append(proc.args, argument{
			name:      row.ArgumentName,
			dataType:  row.DataType,
			direction: direction,
			position:  row.Position,
		})
	}

	doc := types.Dictionary{Packages: []types.PackageEntry{}}
	var summary Summary

	for _, alias := range order {
		pkg := packages[alias]
		entry := types.PackageEntry{
			Name:       pkg.alias,
			Procedures: make([]types.ProcedureEntry, 0, len(pkg.procOrder)),
		}

		for _, name := range pkg.procOrder {
			proc := pkg.procs[name]
			entry.Procedures = append(entry.Procedures, renderProcedure(proc))
			summary.Procedures++
			if proc.kind == "function" {
				summary.Functions++
			}
		}

		doc.Packages = append(doc.Packages, entry)
		summary.Packages++
	}

	return doc, summary
}

// renderProcedure sorts the procedure's arguments by position and builds its
// signature. The sort is stable: duplicate positions keep first-seen order.
func renderProcedure(proc *procedureGroup) types.ProcedureEntry {
	sort.SliceStable(proc.args, func(i, j int) bool {
		return proc.args[i].position < proc.args[j].position
	})

	signature := proc.label
	if len(proc.args) > 0 {
		parts := make([]string, len(proc.args))
		for i, a := range proc.args {
			parts[i] = fmt.Sprintf("%s %s %s", a.name, a.direction, a.dataType)
		}
		signature = fmt.Sprintf("%s(%s)", proc.label, strings.Join(parts, ", "))
	}

	entry := types.ProcedureEntry{
		Label:     proc.label,
		Detail:    proc.detail,
		Kind:      proc.kind,
		Signature: signature,
	}

	// Only functions expose a return type, both in the signature and as a
	// field. A RETURN_TYPE on a procedure row is ignored.
	if proc.kind == "function" && proc.returnType != "" {
		entry.Signature += " RETURN " + proc.returnType
		entry.ReturnType = proc.returnType
	}

	return entry
}
