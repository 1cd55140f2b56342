package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

// Catalog API flavors supported by the generic JSON fetcher. Each flavor owns
// its query parameters and response mapping; the rest of the request flow is
// shared.
const (
	catalogFlavorMSLearn  = "mslearn"
	catalogFlavorCoursera = "coursera"
)

// catalogAPIFetcher implements Fetcher for providers exposing a public JSON
// catalog endpoint.
type catalogAPIFetcher struct {
	client     HTTPClient
	maxResults int
}

// NewCatalogAPIFetcher builds the generic JSON catalog fetcher.
func NewCatalogAPIFetcher(client HTTPClient, maxResults int) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &catalogAPIFetcher{client: client, maxResults: maxResults}
}

func (f *catalogAPIFetcher) ID() string {
	return SourceTypeCatalogAPI
}

func (f *catalogAPIFetcher) Fetch(ctx context.Context, cfg Source, category string) ([]domain.Candidate, error) {
	if !strings.EqualFold(cfg.Type, SourceTypeCatalogAPI) {
		return nil, fmt.Errorf("catalog api fetcher received incompatible source type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("source %q source_url is empty", cfg.ID)
	}

	flavor := strings.ToLower(ConfigString(cfg, "flavor", ""))
	keyword := cfg.Keyword(category)

	var params map[string]string
	switch flavor {
	case catalogFlavorMSLearn:
		params = map[string]string{
			"term":   keyword,
			"locale": "en-us",
			"type":   "learningPath",
			"$top":   strconv.Itoa(f.maxResults),
		}
	case catalogFlavorCoursera:
		params = map[string]string{
			"q":      "search",
			"query":  keyword,
			"limit":  strconv.Itoa(f.maxResults),
			"fields": "name,slug,description",
		}
	default:
		return nil, fmt.Errorf("source %q has unsupported catalog api flavor %q", cfg.ID, flavor)
	}

	queryURL, err := withQuery(cfg.SourceURL, params)
	if err != nil {
		return nil, err
	}

	raw, err := fetchPage(ctx, f.client, queryURL, cfg.ID, Headers(cfg))
	if err != nil {
		return nil, err
	}

	var candidates []domain.Candidate
	switch flavor {
	case catalogFlavorMSLearn:
		candidates, err = msLearnCandidates(raw, cfg, category, f.maxResults)
	case catalogFlavorCoursera:
		candidates, err = courseraCandidates(raw, cfg, category, f.maxResults)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", cfg.ID, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s catalog returned no entries for %q", cfg.ID, category)
	}
	return candidates, nil
}

// msLearnResponse mirrors the Microsoft Learn catalog API payload.
type msLearnResponse struct {
	LearningPaths []struct {
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		URL     string   `json:"url"`
		Levels  []string `json:"levels"`
	} `json:"learningPaths"`
}

func msLearnCandidates(raw []byte, cfg Source, category string, limit int) ([]domain.Candidate, error) {
	var resp msLearnResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(resp.LearningPaths))
	for _, item := range resp.LearningPaths {
		if len(candidates) >= limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		itemURL := strings.TrimSpace(item.URL)
		if itemURL == "" {
			itemURL = "https://learn.microsoft.com"
		} else if !strings.HasPrefix(itemURL, "http") {
			itemURL = "https://learn.microsoft.com" + itemURL
		}

		level := ""
		if len(item.Levels) > 0 {
			level = capitalize(item.Levels[0])
		}

		candidates = append(candidates, domain.Candidate{
			Title:       title,
			URL:         itemURL,
			Description: strings.TrimSpace(item.Summary),
			Platform:    cfg.Platform,
			Category:    category,
			Level:       level,
		})
	}
	return candidates, nil
}

// courseraResponse mirrors the Coursera public catalog API payload.
type courseraResponse struct {
	Elements []struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	} `json:"elements"`
}

func courseraCandidates(raw []byte, cfg Source, category string, limit int) ([]domain.Candidate, error) {
	var resp courseraResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(resp.Elements))
	for _, item := range resp.Elements {
		if len(candidates) >= limit {
			break
		}
		title := strings.TrimSpace(item.Name)
		slug := strings.TrimSpace(item.Slug)
		if title == "" || slug == "" {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Title:       title,
			URL:         "https://www.coursera.org/learn/" + slug,
			Description: strings.TrimSpace(item.Description),
			Platform:    cfg.Platform,
			Category:    category,
		})
	}
	return candidates, nil
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
