package sources

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet(nil); got != "<empty>" {
		t.Errorf("empty body snippet = %q", got)
	}
	if got := responseSnippet([]byte("  short body  ")); got != "short body" {
		t.Errorf("short body snippet = %q", got)
	}

	long := strings.Repeat("x", 600)
	got := responseSnippet([]byte(long))
	if got != long[:512]+"..." {
		t.Errorf("long body not truncated at 512 bytes: %d chars", len(got))
	}

	// A multi-byte rune straddling the cut point must not be split.
	multi := strings.Repeat("日", 200)
	got = responseSnippet([]byte(multi))
	if !utf8.ValidString(got) {
		t.Error("snippet truncation produced invalid UTF-8")
	}
	if !strings.HasPrefix(multi, strings.TrimSuffix(got, "...")) {
		t.Errorf("snippet is not a clean prefix of the body: %q", got[len(got)-12:])
	}
}

func TestAbsolutizeURL(t *testing.T) {
	cases := []struct {
		href, base, want string
	}{
		{"/courses/go", "https://example.com/catalog", "https://example.com/courses/go"},
		{"https://other.test/x", "https://example.com", "https://other.test/x"},
		{"relative/path", "https://example.com/a/b", "https://example.com/a/relative/path"},
		{"", "https://example.com", ""},
	}

	for _, tc := range cases {
		if got := absolutizeURL(tc.href, tc.base); got != tc.want {
			t.Errorf("absolutizeURL(%q, %q) = %q, want %q", tc.href, tc.base, got, tc.want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := collapseWhitespace("  a\n\t b   c  "); got != "a b c" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestContainsAnyTerm(t *testing.T) {
	if !containsAnyTerm("Learn Python Today", []string{"python"}) {
		t.Error("case-insensitive match expected")
	}
	if containsAnyTerm("Gardening 101", []string{"python", "go"}) {
		t.Error("no term should match")
	}
	if !containsAnyTerm("anything", nil) {
		t.Error("empty term list matches everything")
	}
	if !containsAnyTerm("anything", []string{"  ", ""}) {
		t.Error("blank terms are skipped, not treated as filters")
	}
}

func TestWithQuery(t *testing.T) {
	got, err := withQuery("https://example.com/search?existing=1", map[string]string{"q": "python basics"})
	if err != nil {
		t.Fatalf("withQuery failed: %v", err)
	}
	if got != "https://example.com/search?existing=1&q=python+basics" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestHeadersDefaults(t *testing.T) {
	h := Headers(Source{})
	if h["User-Agent"] == "" {
		t.Error("default user agent missing")
	}
	if _, ok := h["Accept"]; ok {
		t.Error("accept header should be absent unless configured")
	}

	cfg := Source{Config: map[string]any{
		"user_agent":      "custom/1.0",
		"accept":          "text/html",
		"accept_language": "en-US",
	}}
	h = Headers(cfg)
	if h["User-Agent"] != "custom/1.0" || h["Accept"] != "text/html" || h["Accept-Language"] != "en-US" {
		t.Errorf("configured headers not applied: %v", h)
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := Source{Config: map[string]any{
		"str":    "  value  ",
		"flag":   true,
		"list":   []any{" a ", "", "b"},
		"params": map[string]any{"k": " v ", "empty": ""},
	}}

	if got := ConfigString(cfg, "str", "def"); got != "value" {
		t.Errorf("ConfigString = %q", got)
	}
	if got := ConfigString(cfg, "missing", "def"); got != "def" {
		t.Errorf("ConfigString fallback = %q", got)
	}
	if !ConfigBool(cfg, "flag", false) {
		t.Error("ConfigBool lost the value")
	}
	if got := ConfigStringSlice(cfg, "list"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ConfigStringSlice = %v", got)
	}
	if got := ConfigStringMap(cfg, "params"); len(got) != 1 || got["k"] != "v" {
		t.Errorf("ConfigStringMap = %v", got)
	}
}
