package types

// GenerateConfig holds the resolved settings for a dictionary generation
// run. Paths come from flags, the config file, or environment variables;
// nothing in the pipeline reads process-wide state.
type GenerateConfig struct {
	// InputCSV is the path of the catalog CSV export. Ignored when
	// DatabasePath is set.
	InputCSV string `json:"input_csv" yaml:"input_csv"`

	// DatabasePath is the path of a SQLite snapshot of the catalog export.
	// When set, rows are read from the apex_arguments table instead of the
	// CSV file.
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`

	// AllowListPath is the path of the alias allow-list, a JSON array of
	// strings (or YAML, by file extension).
	AllowListPath string `json:"allowlist_path" yaml:"allowlist_path"`

	// OutputPath is where the dictionary JSON is written.
	OutputPath string `json:"output_path" yaml:"output_path"`
}
