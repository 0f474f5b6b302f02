// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/apexdict/pkg/types"
)

// Encode writes the dictionary as JSON with two-space indentation.
// HTML escaping is off so non-ASCII and punctuation in type names survive
// unchanged; the extension reads the file as UTF-8.
func Encode(w io.Writer, doc types.Dictionary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile writes the dictionary to path atomically: the document is
// encoded into a temp file in the destination directory and renamed over
// path, so a crash mid-write never leaves a truncated dictionary behind.
func WriteFile(path string, doc types.Dictionary) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp output file: %w", err)
	}

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing dictionary: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("setting output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing dictionary %s: %w", path, err)
	}
	return nil
}
