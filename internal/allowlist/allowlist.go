// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package allowlist loads the set of package aliases permitted to appear in
// the generated dictionary. The file is a JSON array of strings; files with
// a .yaml or .yml extension are parsed as a YAML string array instead.
package allowlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// AllowList is a membership set of alias strings.
type AllowList map[string]struct{}

// Load reads the allow-list file at path. A missing or unparsable file is a
// fatal error: without the allow-list no filtering decision can be made and
// no output must be produced. An empty array is valid and allows nothing.
func Load(path string) (AllowList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading allow-list %s: %w", path, err)
	}

	var aliases []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &aliases); err != nil {
			return nil, fmt.Errorf("parsing allow-list %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &aliases); err != nil {
			return nil, fmt.Errorf("parsing allow-list %s: %w", path, err)
		}
	}

	set := make(AllowList, len(aliases))
	for _, a := range aliases {
		set[a] = struct{}{}
	}
	return set, nil
}

// Contains reports whether alias is permitted.
func (a AllowList) Contains(alias string) bool {
	_, ok := a[alias]
	return ok
}
