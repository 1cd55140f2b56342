package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// htmlCatalogFetcher scrapes semi-structured course listing pages. Selection
// is permissive: several candidate selectors are tried in priority order, and
// cards without a recognizable title are skipped entirely.
type htmlCatalogFetcher struct {
	client     HTTPClient
	maxResults int
}

// NewHTMLCatalogFetcher builds the goquery-backed catalog page fetcher.
func NewHTMLCatalogFetcher(client HTTPClient, maxResults int) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &htmlCatalogFetcher{client: client, maxResults: maxResults}
}

func (f *htmlCatalogFetcher) ID() string {
	return SourceTypeHTMLCatalog
}

func (f *htmlCatalogFetcher) Fetch(ctx context.Context, cfg Source, category string) ([]domain.Candidate, error) {
	if !strings.EqualFold(cfg.Type, SourceTypeHTMLCatalog) {
		return nil, fmt.Errorf("html catalog fetcher received incompatible source type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("source %q source_url is empty", cfg.ID)
	}

	pageURL := cfg.SourceURL
	if param := ConfigString(cfg, "query_param", ""); param != "" {
		params := map[string]string{param: cfg.Keyword(category)}
		for k, v := range ConfigStringMap(cfg, "query_extra") {
			params[k] = v
		}
		var err error
		pageURL, err = withQuery(cfg.SourceURL, params)
		if err != nil {
			return nil, err
		}
	}

	body, err := fetchPage(ctx, f.client, pageURL, cfg.ID, Headers(cfg))
	if err != nil {
		return nil, err
	}
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	candidates, err := f.parseCatalogPage(body, cfg, category, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse %s catalog page: %w", cfg.ID, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s catalog page yielded no entries for %q", cfg.ID, category)
	}
	return candidates, nil
}

func (f *htmlCatalogFetcher) parseCatalogPage(body []byte, cfg Source, category, pageURL string) ([]domain.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	cardSelector := ConfigString(cfg, "card_selector", "div.course-card, article, div.card")
	titleSelectors := ConfigStringSlice(cfg, "title_selectors")
	if len(titleSelectors) == 0 {
		titleSelectors = []string{"h3", "h2", ".course-title", ".title"}
	}
	descSelectors := ConfigStringSlice(cfg, "desc_selectors")
	if len(descSelectors) == 0 {
		descSelectors = []string{"p", ".course-description", ".description"}
	}
	linkSelector := ConfigString(cfg, "link_selector", "a[href]")
	baseURL := ConfigString(cfg, "base_url", pageURL)

	var terms []string
	if ConfigBool(cfg, "require_keywords", false) {
		terms = strings.Fields(cfg.Keyword(category))
	}

	candidates := make([]domain.Candidate, 0, f.maxResults)
	doc.Find(cardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := firstSelectionText(card, titleSelectors)
		if title == "" {
			return true
		}

		desc := firstSelectionText(card, descSelectors)
		if len(terms) > 0 && !containsAnyTerm(title+" "+desc+" "+card.Text(), terms) {
			return true
		}

		href := pageURL
		if link := card.Find(linkSelector).First(); link.Length() > 0 {
			if attr, ok := link.Attr("href"); ok {
				href = absolutizeURL(attr, baseURL)
			}
		}

		candidates = append(candidates, domain.Candidate{
			Title:       title,
			URL:         href,
			Description: desc,
			Platform:    cfg.Platform,
			Category:    category,
		})
		return len(candidates) < f.maxResults
	})

	return candidates, nil
}

// firstSelectionText returns the text of the first selector that matches a
// node with non-empty text, in the given priority order.
func firstSelectionText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if node := sel.Find(s).First(); node.Length() > 0 {
			if text := collapseWhitespace(node.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}
