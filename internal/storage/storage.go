package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local description cache abstraction. The cache
// memoizes cleaned descriptions by URL so a monthly refresh does not re-pay
// the text-generation call for entries that were already summarized. It never
// participates in dedup or catalog contents.

// Cache stores cleaned descriptions keyed by resource URL.
type Cache interface {
	Close() error
	GetDescription(url string) (string, bool, error)
	PutDescription(url, description string) error
}

// Options controls retention characteristics for concrete cache implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 24 * time.Hour
)

// NewCache creates the configured cache backend.
func NewCache(typ, path string, opts Options) (Cache, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopCache{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt cache requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopCache struct{}

func (noopCache) Close() error                                { return nil }
func (noopCache) GetDescription(string) (string, bool, error) { return "", false, nil }
func (noopCache) PutDescription(string, string) error         { return nil }
