package domain

// Domain contains the core catalog models shared across packages.

// Level labels accepted for a resource. Anything else is coerced to LevelAll.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAll          = "All Levels"
)

// Candidate is a raw course entry produced by a source fetcher for one
// category. It is never persisted; the pipeline turns accepted candidates
// into Resources.
type Candidate struct {
	Title       string
	URL         string
	Description string
	Platform    string
	Category    string
	Level       string
}

// Resource is the persisted catalog unit. The URL is the identity key within
// a catalog. JSON field order matches the published contract.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Free        bool   `json:"free"`
	Retrieved   string `json:"retrieved"`
}

// Catalog is the complete output artifact for one run. It is rebuilt from
// scratch every run; there is no incremental merge with a prior catalog.
type Catalog struct {
	Generated  string     `json:"generated"`
	Total      int        `json:"total"`
	Categories []string   `json:"categories"`
	Resources  []Resource `json:"resources"`
}

// NormalizeLevel coerces free-form level strings into the accepted set.
func NormalizeLevel(level string) string {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
		return level
	default:
		return LevelAll
	}
}
