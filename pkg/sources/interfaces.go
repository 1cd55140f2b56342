package sources

import (
	"context"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
	"github.com/learnstack-hq/learnstack-course-harvester/pkg/httpclient"
)

// Fetcher retrieves raw course candidates for one source and one category.
// Concrete implementations live in source-specific files (e.g. youtube.go).
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Source, category string) ([]domain.Candidate, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(cfg Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
