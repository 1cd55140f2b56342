package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

// Writer persists the catalog artifact to a fixed path. The write is a single
// terminal operation per run: the payload lands in a temp file in the target
// directory and is renamed over the output path, so a failed run never leaves
// a partially-written catalog behind.
type Writer struct {
	Path string
}

// NewWriter builds a writer publishing to the given path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// Write serializes the catalog as indented UTF-8 JSON and atomically replaces
// any previous catalog file. Any error here is fatal to the run.
func (w *Writer) Write(cat domain.Catalog) error {
	if w == nil || w.Path == "" {
		return fmt.Errorf("catalog writer has no output path")
	}

	payload, err := Encode(cat)
	if err != nil {
		return err
	}

	dir := filepath.Dir(w.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp catalog file: %w", err)
	}

	if err := os.Rename(tmpName, w.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish catalog: %w", err)
	}

	return nil
}

// Encode renders the catalog as 2-space indented JSON without HTML escaping.
func Encode(cat domain.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cat); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
