package describe

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFallbackDescriptionTruncates(t *testing.T) {
	long := strings.Repeat("x", 450)

	got := FallbackDescription(long)
	if len(got) != 200 {
		t.Fatalf("expected 200-char truncation, got %d chars", len(got))
	}
	if got != long[:200] {
		t.Error("truncation must be a prefix of the raw description")
	}
}

func TestFallbackDescriptionCountsRunesNotBytes(t *testing.T) {
	// 100 characters but 300 bytes: fits the budget, must pass through whole.
	raw := strings.Repeat("日", 100)
	if got := FallbackDescription(raw); got != raw {
		t.Fatalf("under-budget multi-byte input was truncated to %d chars", utf8.RuneCountInString(got))
	}

	// 250 characters: truncated to 200 characters, never mid-rune.
	long := strings.Repeat("é", 250)
	got := FallbackDescription(long)
	if utf8.RuneCountInString(got) != 200 {
		t.Fatalf("expected 200-char truncation, got %d chars", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Error("truncation produced invalid UTF-8")
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncation must be a prefix of the raw description")
	}
}

func TestFallbackDescriptionShortInputUnchanged(t *testing.T) {
	raw := "A short description."
	if got := FallbackDescription(raw); got != raw {
		t.Errorf("short input should pass through, got %q", got)
	}
}

func TestFallbackDescriptionExactBoundary(t *testing.T) {
	raw := strings.Repeat("y", 200)
	if got := FallbackDescription(raw); got != raw {
		t.Errorf("200-char input should pass through unchanged, got %d chars", len(got))
	}
}

func TestFallbackDescriptionEmptyYieldsPlaceholder(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		if got := FallbackDescription(raw); got != Placeholder {
			t.Errorf("input %q: expected placeholder, got %q", raw, got)
		}
	}
}

func TestFallbackDescriptionIsDeterministic(t *testing.T) {
	raw := strings.Repeat("abc ", 100)
	first := FallbackDescription(raw)
	for i := 0; i < 5; i++ {
		if got := FallbackDescription(raw); got != first {
			t.Fatalf("same input produced different output: %q vs %q", first, got)
		}
	}
}

func TestStaticCleanerUsesFallback(t *testing.T) {
	c := StaticCleaner{}

	raw := strings.Repeat("z", 300)
	got := c.Clean(context.Background(), "title", raw, "category")
	if got != raw[:200] {
		t.Errorf("static cleaner should return the truncation fallback, got %d chars", len(got))
	}

	if got := c.Clean(context.Background(), "title", "", "category"); got != Placeholder {
		t.Errorf("static cleaner should return placeholder for empty input, got %q", got)
	}
}
