// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/apexdict/internal/allowlist"
	"github.com/pdiddy/apexdict/internal/catalog"
	"github.com/pdiddy/apexdict/internal/dictionary"
	"github.com/pdiddy/apexdict/pkg/types"
)

// Built-in path defaults, matching the export layout the extension repo uses.
const (
	defaultInput     = "apex-24.2-export.csv"
	defaultAllowList = "apex-public-plsql-api.json"
	defaultOutput    = "extension/dictionaries/apex-api.json"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the completion dictionary from a catalog export",
	Long: `Generate loads the alias allow-list, reads the catalog export, and
writes the completion dictionary JSON consumed by the editor extension.

Rows whose alias is not in the allow-list are filtered out. Remaining rows
are grouped by package and procedure in first-seen order, arguments are
sorted by position and deduplicated, and each callable gets a rendered
signature. The output file is written atomically after the full pass;
on any fatal error nothing is written.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfigFromFlags(cmd)

	allowed, err := allowlist.Load(cfg.AllowListPath)
	if err != nil {
		return err
	}

	rows, stats, err := catalogSource(cfg).Rows(context.Background(), os.Stderr)
	if err != nil {
		return err
	}

	doc, summary := dictionary.Build(rows, allowed)

	if err := dictionary.WriteFile(cfg.OutputPath, doc); err != nil {
		return err
	}

	fmt.Printf("Generated %s\n", cfg.OutputPath)
	fmt.Printf("  Packages: %d\n", summary.Packages)
	fmt.Printf("  Total: %d (%d functions, %d procedures)\n",
		summary.Procedures, summary.Functions, summary.ProcedureOnly())
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d row(s) skipped as malformed\n", stats.Skipped, stats.Total())
	}
	return nil
}

// catalogSource picks the input source: the SQLite snapshot when configured,
// the CSV export otherwise.
func catalogSource(cfg types.GenerateConfig) catalog.Source {
	if cfg.DatabasePath != "" {
		return &catalog.SQLiteSource{Path: cfg.DatabasePath}
	}
	return &catalog.CSVSource{Path: cfg.InputCSV}
}

// generateConfigFromFlags resolves the run's paths: flag value if given,
// then the config file / environment, then the built-in default.
func generateConfigFromFlags(cmd *cobra.Command) types.GenerateConfig {
	return types.GenerateConfig{
		InputCSV:      pathSetting(cmd, "input", "generate.input", defaultInput),
		DatabasePath:  pathSetting(cmd, "from-db", "generate.database", ""),
		AllowListPath: pathSetting(cmd, "allowlist", "generate.allowlist", defaultAllowList),
		OutputPath:    pathSetting(cmd, "output", "generate.output", defaultOutput),
	}
}

func pathSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	generateCmd.Flags().String("input", "", "catalog CSV export to read (default "+defaultInput+")")
	generateCmd.Flags().String("from-db", "", "read rows from a SQLite snapshot instead of the CSV")
	generateCmd.Flags().String("allowlist", "", "alias allow-list file, JSON or YAML (default "+defaultAllowList+")")
	generateCmd.Flags().String("output", "", "dictionary JSON output path (default "+defaultOutput+")")

	rootCmd.AddCommand(generateCmd)
}
