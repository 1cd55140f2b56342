package catalog

import (
	"strings"
	"time"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

// DateFormat is the ISO date layout used for generated/retrieved stamps.
const DateFormat = "2006-01-02"

// NewResource assembles the canonical resource record from an adapter
// candidate and its cleaned description. Level defaults to "All Levels",
// free defaults to true, and retrieved carries the run date so every
// resource in one run shares the same stamp.
func NewResource(c domain.Candidate, description string, retrieved time.Time) domain.Resource {
	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = strings.TrimSpace(c.Description)
	}
	if desc == "" {
		desc = "No description available."
	}

	return domain.Resource{
		Title:       strings.TrimSpace(c.Title),
		URL:         strings.TrimSpace(c.URL),
		Description: desc,
		Platform:    strings.TrimSpace(c.Platform),
		Category:    c.Category,
		Level:       domain.NormalizeLevel(c.Level),
		Free:        true,
		Retrieved:   retrieved.Format(DateFormat),
	}
}

// New assembles the catalog artifact for one run from the already-deduplicated
// resource sequence.
func New(categories []string, resources []domain.Resource, generated time.Time) domain.Catalog {
	cats := make([]string, len(categories))
	copy(cats, categories)

	if resources == nil {
		resources = []domain.Resource{}
	}

	return domain.Catalog{
		Generated:  generated.Format(DateFormat),
		Total:      len(resources),
		Categories: cats,
		Resources:  resources,
	}
}
