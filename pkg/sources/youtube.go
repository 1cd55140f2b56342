package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// youtubeFetcher queries the YouTube Data API v3 for free course playlists.
type youtubeFetcher struct {
	apiKey     string
	maxResults int64
	newService func(ctx context.Context) (*youtube.Service, error)
}

// NewYouTubeFetcher builds a fetcher backed by the YouTube Data API. An empty
// API key yields a fetcher that fails fast; curated fallback entries still
// apply at the adapter boundary.
func NewYouTubeFetcher(apiKey string, maxResults int) Fetcher {
	f := &youtubeFetcher{
		apiKey:     strings.TrimSpace(apiKey),
		maxResults: int64(maxResults),
	}
	f.newService = func(ctx context.Context) (*youtube.Service, error) {
		return youtube.NewService(ctx, option.WithAPIKey(f.apiKey))
	}
	return f
}

func (f *youtubeFetcher) ID() string {
	return SourceTypeYouTubeSearch
}

func (f *youtubeFetcher) Fetch(ctx context.Context, cfg Source, category string) ([]domain.Candidate, error) {
	if !strings.EqualFold(cfg.Type, SourceTypeYouTubeSearch) {
		return nil, fmt.Errorf("youtube fetcher received incompatible source type %q", cfg.Type)
	}
	if f.apiKey == "" {
		return nil, fmt.Errorf("source %q requires a youtube api key", cfg.ID)
	}

	svc, err := f.newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("init youtube service: %w", err)
	}

	query := fmt.Sprintf("free %s tutorial course", category)
	call := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("playlist").
		MaxResults(f.maxResults).
		RelevanceLanguage("en").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search for %q: %w", category, err)
	}

	candidates := playlistCandidates(resp.Items, cfg, category)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("youtube search for %q returned no playlists", category)
	}
	return candidates, nil
}

// playlistCandidates maps search results to candidates, skipping items without
// a playlist id.
func playlistCandidates(items []*youtube.SearchResult, cfg Source, category string) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		if item == nil || item.Id == nil || item.Snippet == nil {
			continue
		}
		playlistID := strings.TrimSpace(item.Id.PlaylistId)
		if playlistID == "" {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Title:       strings.TrimSpace(item.Snippet.Title),
			URL:         "https://www.youtube.com/playlist?list=" + playlistID,
			Description: strings.TrimSpace(item.Snippet.Description),
			Platform:    cfg.Platform,
			Category:    category,
		})
	}
	return candidates
}
