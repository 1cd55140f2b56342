package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Package sources contains the source registry (YAML/JSON) and fetchers.

// Source describes one course provider: how to query it live, which search
// keyword to use per category, and the curated fallback entries that stand in
// when live fetching is unreliable.
type Source struct {
	ID             string                         `json:"id" yaml:"id"`
	Name           string                         `json:"name" yaml:"name"`
	Type           string                         `json:"type" yaml:"type"`
	Platform       string                         `json:"platform" yaml:"platform"`
	SourceURL      string                         `json:"source_url" yaml:"source_url"`
	RequestDelayMs int                            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Keywords       map[string]string              `json:"keywords" yaml:"keywords"`
	Fallback       map[string][]CandidateTemplate `json:"fallback" yaml:"fallback"`
	Config         map[string]any                 `json:"config" yaml:"config"`
}

// registryFile is the on-disk shape of the sources registry.
type registryFile struct {
	Categories []string `json:"categories" yaml:"categories"`
	Sources    []Source `json:"sources" yaml:"sources"`
}

// Registry materializes source definitions and the ordered category list
// loaded from a config file. Load order is preserved; iteration order drives
// the catalog's first-seen dedup policy.
type Registry struct {
	mu         sync.RWMutex
	categories []string
	sources    []Source
	idx        map[string]Source
}

var defaultRequestDelayMs = 1000

// LoadRegistry loads the sources registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}
	if len(fileReg.Categories) == 0 {
		return nil, errors.New("sources file contains no categories")
	}

	categories := make([]string, 0, len(fileReg.Categories))
	seenCats := make(map[string]struct{}, len(fileReg.Categories))
	for i, c := range fileReg.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("categories[%d]: empty category label", i)
		}
		if _, exists := seenCats[c]; exists {
			return nil, fmt.Errorf("duplicate category %q", c)
		}
		seenCats[c] = struct{}{}
		categories = append(categories, c)
	}

	reg := &Registry{
		categories: categories,
		sources:    make([]Source, len(fileReg.Sources)),
		idx:        make(map[string]Source, len(fileReg.Sources)),
	}

	for i := range fileReg.Sources {
		s := sanitizeSource(fileReg.Sources[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.sources[i] = s
		reg.idx[s.ID] = s
	}

	return reg, nil
}

// parseRegistry attempts to decode the sources file content.
func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

// sanitizeSource trims and normalizes the source config fields.
func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.Platform = strings.TrimSpace(s.Platform)
	s.SourceURL = strings.TrimSpace(s.SourceURL)

	if s.Platform == "" {
		s.Platform = s.Name
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}

	for cat, entries := range s.Fallback {
		for i := range entries {
			entries[i] = sanitizeTemplate(entries[i])
		}
		s.Fallback[cat] = entries
	}

	return s
}

// validateSource checks that required fields are present.
func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required for source %q", s.ID)
	}
	if s.Type == "" {
		return fmt.Errorf("type is required for source %q", s.ID)
	}
	if s.SourceURL == "" && len(s.Fallback) == 0 {
		return fmt.Errorf("source %q needs a source_url or fallback entries", s.ID)
	}
	return nil
}

// Categories returns the configured category labels in order.
func (r *Registry) Categories() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// All returns all configured sources in load order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByID returns the source entry for the given id, if loaded.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Source{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.idx[id]
	return s, ok
}

// RequestDelay returns the polite delay inserted after this source's fetch.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}

// Keyword returns the search keyword configured for the category, defaulting
// to the lowercased category label.
func (s Source) Keyword(category string) string {
	if s.Keywords != nil {
		if kw, ok := s.Keywords[category]; ok {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				return trimmed
			}
		}
	}
	return strings.ToLower(category)
}
