package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

func sampleCatalog() domain.Catalog {
	return New(
		[]string{"Python Programming"},
		[]domain.Resource{{
			Title:       "Intro",
			URL:         "https://example.com/intro?a=1&b=2",
			Description: "desc",
			Platform:    "Example",
			Category:    "Python Programming",
			Level:       domain.LevelBeginner,
			Free:        true,
			Retrieved:   "2026-01-01",
		}},
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
}

func TestWriterWritesCatalogFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "resources.json")

	w := NewWriter(out)
	if err := w.Write(sampleCatalog()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded domain.Catalog
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if decoded.Total != 1 || len(decoded.Resources) != 1 {
		t.Fatalf("unexpected catalog contents: %+v", decoded)
	}
	if decoded.Resources[0].URL != "https://example.com/intro?a=1&b=2" {
		t.Errorf("url mangled: %q", decoded.Resources[0].URL)
	}

	// No temp file left behind after a successful publish.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the catalog file in %s, found %d entries", dir, len(entries))
	}
}

func TestWriterDoesNotEscapeHTML(t *testing.T) {
	raw, err := Encode(sampleCatalog())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(string(raw), `&`) {
		t.Error("ampersands should not be html-escaped in the published catalog")
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Error("catalog should be indented")
	}
}

func TestWriterReplacesPreviousCatalog(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resources.json")
	if err := os.WriteFile(out, []byte("old contents"), 0o644); err != nil {
		t.Fatalf("seed old file: %v", err)
	}

	if err := NewWriter(out).Write(sampleCatalog()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(raw), "old contents") {
		t.Error("previous catalog was not replaced")
	}
}

func TestWriterFailureLeavesPreviousCatalogIntact(t *testing.T) {
	dir := t.TempDir()

	// Publishing over a non-empty directory cannot succeed; the rename fails
	// and whatever was at the path before must survive.
	out := filepath.Join(dir, "resources.json")
	if err := os.MkdirAll(filepath.Join(out, "occupied"), 0o755); err != nil {
		t.Fatalf("seed blocking directory: %v", err)
	}

	if err := NewWriter(out).Write(sampleCatalog()); err == nil {
		t.Fatal("expected write to fail when the output path is blocked")
	}

	if _, err := os.Stat(filepath.Join(out, "occupied")); err != nil {
		t.Errorf("previous path contents were disturbed: %v", err)
	}
}

func TestWriterRejectsEmptyPath(t *testing.T) {
	if err := NewWriter("").Write(sampleCatalog()); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

func TestWriterCreatesOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "deep", "resources.json")
	if err := NewWriter(out).Write(sampleCatalog()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("catalog file missing: %v", err)
	}
}
