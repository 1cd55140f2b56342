package sources

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func msLearnSource() Source {
	return Source{
		ID:        "microsoft-learn",
		Name:      "Microsoft Learn",
		Type:      SourceTypeCatalogAPI,
		Platform:  "Microsoft Learn",
		SourceURL: "https://learn.microsoft.com/api/catalog/",
		Keywords:  map[string]string{"Python Programming": "python"},
		Config:    map[string]any{"flavor": "mslearn"},
	}
}

func courseraSource() Source {
	return Source{
		ID:        "coursera",
		Name:      "Coursera",
		Type:      SourceTypeCatalogAPI,
		Platform:  "Coursera",
		SourceURL: "https://api.coursera.org/api/courses.v1",
		Config:    map[string]any{"flavor": "coursera"},
	}
}

func TestCatalogAPIMSLearn(t *testing.T) {
	payload := `{
  "learningPaths": [
    {"title": "Python for beginners", "summary": " Get started. ", "url": "/training/paths/beginner-python/", "levels": ["beginner"]},
    {"title": "", "summary": "skipped: no title"},
    {"title": "Build web apps", "summary": "s", "url": "https://learn.microsoft.com/abs", "levels": []}
  ]
}`
	client := &stubClient{body: []byte(payload), status: http.StatusOK}
	f := NewCatalogAPIFetcher(client, 10)

	got, err := f.Fetch(context.Background(), msLearnSource(), "Python Programming")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].URL != "https://learn.microsoft.com/training/paths/beginner-python/" {
		t.Errorf("relative url not prefixed: %q", got[0].URL)
	}
	if got[0].Level != "Beginner" {
		t.Errorf("level not capitalized: %q", got[0].Level)
	}
	if got[0].Description != "Get started." {
		t.Errorf("summary not trimmed: %q", got[0].Description)
	}
	if got[1].URL != "https://learn.microsoft.com/abs" {
		t.Errorf("absolute url rewritten: %q", got[1].URL)
	}

	for _, fragment := range []string{"term=python", "locale=en-us", "type=learningPath"} {
		if !strings.Contains(client.lastURL, fragment) {
			t.Errorf("query fragment %q missing from %q", fragment, client.lastURL)
		}
	}
}

func TestCatalogAPICoursera(t *testing.T) {
	payload := `{
  "elements": [
    {"name": "Machine Learning", "slug": "machine-learning", "description": "Classic course."},
    {"name": "No slug", "slug": "", "description": "skipped"},
    {"name": "", "slug": "no-name", "description": "skipped"}
  ]
}`
	client := &stubClient{body: []byte(payload), status: http.StatusOK}
	f := NewCatalogAPIFetcher(client, 10)

	got, err := f.Fetch(context.Background(), courseraSource(), "Data Science AI")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].URL != "https://www.coursera.org/learn/machine-learning" {
		t.Errorf("slug url wrong: %q", got[0].URL)
	}
	if got[0].Category != "Data Science AI" {
		t.Errorf("category not stamped: %q", got[0].Category)
	}
	if !strings.Contains(client.lastURL, "q=search") {
		t.Errorf("search query param missing from %q", client.lastURL)
	}
}

func TestCatalogAPIRespectsMaxResults(t *testing.T) {
	payload := `{"elements": [
    {"name": "A", "slug": "a"}, {"name": "B", "slug": "b"}, {"name": "C", "slug": "c"}
  ]}`
	client := &stubClient{body: []byte(payload), status: http.StatusOK}
	f := NewCatalogAPIFetcher(client, 2)

	got, err := f.Fetch(context.Background(), courseraSource(), "c")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"beginner":     "Beginner",
		" advanced ":   "Advanced",
		"":             "",
		"   ":          "",
		"X":            "X",
		"école":        "École",
		"日本語 level":    "日本語 level",
		"étudiant pro": "Étudiant pro",
	}
	for in, want := range cases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCatalogAPIErrorPaths(t *testing.T) {
	t.Run("unsupported flavor", func(t *testing.T) {
		cfg := courseraSource()
		cfg.Config["flavor"] = "udemy"
		f := NewCatalogAPIFetcher(&stubClient{}, 10)
		if _, err := f.Fetch(context.Background(), cfg, "c"); err == nil {
			t.Fatal("expected error for unsupported flavor")
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		client := &stubClient{body: []byte("<html>not json</html>"), status: http.StatusOK}
		f := NewCatalogAPIFetcher(client, 10)
		if _, err := f.Fetch(context.Background(), courseraSource(), "c"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("empty result set", func(t *testing.T) {
		client := &stubClient{body: []byte(`{"elements": []}`), status: http.StatusOK}
		f := NewCatalogAPIFetcher(client, 10)
		if _, err := f.Fetch(context.Background(), courseraSource(), "c"); err == nil {
			t.Fatal("expected error for empty result set")
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := &stubClient{body: []byte("throttled"), status: http.StatusTooManyRequests}
		f := NewCatalogAPIFetcher(client, 10)
		if _, err := f.Fetch(context.Background(), msLearnSource(), "c"); err == nil {
			t.Fatal("expected error for throttled response")
		}
	})
}
