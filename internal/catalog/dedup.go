package catalog

import "github.com/learnstack-hq/learnstack-course-harvester/internal/domain"

// Dedup removes resources whose URL was already seen, keeping the first
// occurrence. "First" is the (category order, source order, within-source
// order) iteration sequence the pipeline appended in; the tie-break is
// deliberate, not an approximation. Applying Dedup to its own output is a
// no-op.
func Dedup(resources []domain.Resource) []domain.Resource {
	seen := make(map[string]struct{}, len(resources))
	unique := make([]domain.Resource, 0, len(resources))

	for _, r := range resources {
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
