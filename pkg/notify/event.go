package notify

import "time"

// CatalogEvent is the payload announced after a successful catalog write.
type CatalogEvent struct {
	Generated  string    `json:"generated"`
	Total      int       `json:"total"`
	Categories []string  `json:"categories"`
	OutputPath string    `json:"output_path"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// NewCatalogEvent constructs the event for a just-published catalog.
func NewCatalogEvent(generated string, total int, categories []string, outputPath string) CatalogEvent {
	cats := make([]string, len(categories))
	copy(cats, categories)

	return CatalogEvent{
		Generated:  generated,
		Total:      total,
		Categories: cats,
		OutputPath: outputPath,
		EmittedAt:  time.Now().UTC(),
	}
}
