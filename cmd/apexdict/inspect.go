// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/apexdict/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a catalog export without writing anything",
	Long: `Inspect reads a catalog export and prints per-alias row and procedure
counts. No allow-list is applied and no output file is written; use it to
see what a generate run would consume, or to check a fresh export for
malformed rows before updating the allow-list.`,
	RunE: runInspect,
}

// aliasCount summarizes one alias in an export.
type aliasCount struct {
	Alias      string `json:"alias"`
	Rows       int    `json:"rows"`
	Procedures int    `json:"procedures"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := generateConfigFromFlags(cmd)
	aliasFilter, _ := cmd.Flags().GetString("alias")

	rows, stats, err := catalogSource(cfg).Rows(context.Background(), os.Stderr)
	if err != nil {
		return err
	}

	counts := countByAlias(rows, aliasFilter)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	fmt.Fprintf(os.Stdout, "%-30s  %8s  %10s\n", "Alias", "Rows", "Procedures")
	for _, c := range counts {
		fmt.Fprintf(os.Stdout, "%-30s  %8d  %10d\n", c.Alias, c.Rows, c.Procedures)
	}
	fmt.Fprintf(os.Stdout, "\n%d alias(es), %d row(s)", len(counts), stats.Read)
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stdout, ", %d skipped", stats.Skipped)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

// countByAlias tallies rows and distinct procedure names per alias, in
// first-seen order. A non-empty filter keeps only that alias.
func countByAlias(rows []types.Row, filter string) []aliasCount {
	var (
		order   []string
		byAlias = make(map[string]*aliasCount)
		procs   = make(map[string]map[string]struct{})
	)

	for _, row := range rows {
		if filter != "" && row.Alias != filter {
			continue
		}
		c, ok := byAlias[row.Alias]
		if !ok {
			c = &aliasCount{Alias: row.Alias}
			byAlias[row.Alias] = c
			procs[row.Alias] = make(map[string]struct{})
			order = append(order, row.Alias)
		}
		c.Rows++
		procs[row.Alias][row.ProcedureName] = struct{}{}
	}

	counts := make([]aliasCount, 0, len(order))
	for _, alias := range order {
		c := byAlias[alias]
		c.Procedures = len(procs[alias])
		counts = append(counts, *c)
	}
	return counts
}

func init() {
	inspectCmd.Flags().String("input", "", "catalog CSV export to read (default "+defaultInput+")")
	inspectCmd.Flags().String("from-db", "", "read rows from a SQLite snapshot instead of the CSV")
	inspectCmd.Flags().String("alias", "", "show counts for one alias only")
	inspectCmd.Flags().Bool("json", false, "output counts as JSON")

	rootCmd.AddCommand(inspectCmd)
}
