package pipeline

import (
	"context"
)

// Cleaner normalizes a raw title/description pair into a short summary.
// Mirrors describe.Cleaner so tests can inject fakes without the real client.
type Cleaner interface {
	Clean(ctx context.Context, title, rawDescription, category string) string
}

// DescriptionCache memoizes cleaned descriptions across runs. Mirrors
// storage.Cache minus lifecycle management.
type DescriptionCache interface {
	GetDescription(url string) (string, bool, error)
	PutDescription(url, description string) error
}
