package sources

import (
	"strings"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

// CandidateTemplate is one hand-maintained catalog entry. Curated entries are
// substituted (or appended) when live fetching is unreliable.
type CandidateTemplate struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
	Level       string `json:"level" yaml:"level"`
}

func sanitizeTemplate(t CandidateTemplate) CandidateTemplate {
	t.Title = strings.TrimSpace(t.Title)
	t.URL = strings.TrimSpace(t.URL)
	t.Description = strings.TrimSpace(t.Description)
	t.Level = strings.TrimSpace(t.Level)
	return t
}

// MergeCurated appends the source's curated entries for the category after the
// live results, skipping URLs the live fetch already produced. The returned
// slice is dedup-by-URL local to this source; cross-source dedup happens later
// in the catalog step.
func MergeCurated(cfg Source, category string, live []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(live))
	seen := make(map[string]struct{}, len(live))

	for _, c := range live {
		url := strings.TrimSpace(c.URL)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, c)
	}

	for _, tpl := range cfg.Fallback[category] {
		if tpl.URL == "" || tpl.Title == "" {
			continue
		}
		if _, dup := seen[tpl.URL]; dup {
			continue
		}
		seen[tpl.URL] = struct{}{}
		out = append(out, domain.Candidate{
			Title:       tpl.Title,
			URL:         tpl.URL,
			Description: tpl.Description,
			Platform:    cfg.Platform,
			Category:    category,
			Level:       tpl.Level,
		})
	}

	return out
}
