package catalog

import (
	"testing"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	in := []domain.Resource{
		{Title: "A", URL: "https://example.com/c1"},
		{Title: "B", URL: "https://example.com/c1"},
		{Title: "C", URL: "https://example.com/c2"},
	}

	out := Dedup(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 unique resources, got %d", len(out))
	}
	if out[0].Title != "A" {
		t.Errorf("expected first occurrence to win, got title %q", out[0].Title)
	}
	if out[1].URL != "https://example.com/c2" {
		t.Errorf("unexpected second resource url %q", out[1].URL)
	}
}

func TestDedupPreservesOrder(t *testing.T) {
	in := []domain.Resource{
		{Title: "one", URL: "u1"},
		{Title: "two", URL: "u2"},
		{Title: "dup", URL: "u1"},
		{Title: "three", URL: "u3"},
	}

	out := Dedup(in)

	want := []string{"one", "two", "three"}
	if len(out) != len(want) {
		t.Fatalf("expected %d resources, got %d", len(want), len(out))
	}
	for i, title := range want {
		if out[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, out[i].Title)
		}
	}
}

func TestDedupIsIdempotent(t *testing.T) {
	in := []domain.Resource{
		{Title: "A", URL: "u1"},
		{Title: "B", URL: "u1"},
		{Title: "C", URL: "u2"},
	}

	once := Dedup(in)
	twice := Dedup(once)

	if len(once) != len(twice) {
		t.Fatalf("dedup not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("position %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestDedupEmptyInput(t *testing.T) {
	out := Dedup(nil)
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d entries", len(out))
	}
}
