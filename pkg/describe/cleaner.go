package describe

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Cleaner turns a raw title/description pair into a short consistent summary.
// Implementations must never fail: any upstream error degrades to the
// deterministic truncation fallback, so callers always get a non-empty string.
type Cleaner interface {
	Clean(ctx context.Context, title, rawDescription, category string) string
}

const (
	// fallbackMaxChars bounds the truncation fallback.
	fallbackMaxChars = 200
	// Placeholder is returned when no raw description exists at all.
	Placeholder = "No description available."
)

// FallbackDescription is the pure, side-effect-free degradation path: the raw
// description truncated to a fixed character budget, or the placeholder when
// the raw description is empty. The budget counts runes, not bytes, so
// multi-byte text is never sliced mid-rune.
func FallbackDescription(rawDescription string) string {
	raw := strings.TrimSpace(rawDescription)
	if raw == "" {
		return Placeholder
	}
	if utf8.RuneCountInString(raw) <= fallbackMaxChars {
		return raw
	}
	return string([]rune(raw)[:fallbackMaxChars])
}

// StaticCleaner always answers with the truncation fallback. It stands in when
// no text-generation API key is configured.
type StaticCleaner struct{}

func (StaticCleaner) Clean(_ context.Context, _, rawDescription, _ string) string {
	return FallbackDescription(rawDescription)
}
