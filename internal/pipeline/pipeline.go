package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/catalog"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/domain"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/logger"
	"github.com/learnstack-hq/learnstack-course-harvester/pkg/sources"
)

// Service runs the aggregation pass: every source over every category, in
// fixed order, sequentially, with a polite delay between source invocations.
// Source failures are contained here; only an empty configuration is an error.
type Service struct {
	registry sources.FetcherRegistry
	cleaner  Cleaner
	cache    DescriptionCache
	log      logger.Logger
	now      func() time.Time
}

// SourceResult captures the outcome of one (source, category) invocation:
// how many candidates it contributed and, when the live fetch failed, the
// structured failure reason. A failed fetch can still contribute curated
// fallback candidates.
type SourceResult struct {
	SourceID   string
	Category   string
	Candidates int
	Err        error
}

// NewService wires an aggregator with the source fetcher registry.
func NewService(reg sources.FetcherRegistry, cleaner Cleaner, cache DescriptionCache, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		registry: reg,
		cleaner:  cleaner,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one full aggregation pass and returns the deduplicated,
// first-seen-ordered resource sequence plus per-source outcomes. It fails only
// when the run cannot start at all (no registry, no categories, no sources);
// per-source failures are logged and reported in the results.
func (s *Service) Run(ctx context.Context, categories []string, cfgs []sources.Source) ([]domain.Resource, []SourceResult, error) {
	if s == nil || s.registry == nil {
		return nil, nil, fmt.Errorf("pipeline service is not initialized")
	}
	if len(categories) == 0 {
		return nil, nil, fmt.Errorf("no categories configured for aggregation")
	}
	if len(cfgs) == 0 {
		return nil, nil, fmt.Errorf("no sources configured for aggregation")
	}

	retrieved := s.now()
	var collected []domain.Resource
	results := make([]SourceResult, 0, len(categories)*len(cfgs))

	for _, category := range categories {
		for i, cfg := range cfgs {
			select {
			case <-ctx.Done():
				return catalog.Dedup(collected), results, ctx.Err()
			default:
			}

			res, resources := s.runSource(ctx, cfg, category, retrieved)
			results = append(results, res)
			collected = append(collected, resources...)

			if !s.politeWait(ctx, cfg.RequestDelay(), category == categories[len(categories)-1] && i == len(cfgs)-1) {
				return catalog.Dedup(collected), results, ctx.Err()
			}
		}
	}

	return catalog.Dedup(collected), results, nil
}

// runSource invokes one fetcher for one category, merges curated fallback
// entries, and builds resources from the surviving candidates. Fetch errors
// are contained: they surface in the SourceResult and the error log, never as
// a run failure.
func (s *Service) runSource(ctx context.Context, cfg sources.Source, category string, retrieved time.Time) (SourceResult, []domain.Resource) {
	result := SourceResult{SourceID: cfg.ID, Category: category}

	var live []domain.Candidate
	fetcher, err := s.registry.FetcherFor(cfg)
	if err != nil {
		result.Err = fmt.Errorf("resolve fetcher for source %s: %w", cfg.ID, err)
	} else {
		live, err = fetcher.Fetch(ctx, cfg, category)
		if err != nil {
			result.Err = fmt.Errorf("fetch source %s: %w", cfg.ID, err)
		}
	}

	if result.Err != nil {
		s.log.ErrorObj("source fetch failed", "source_error", map[string]any{
			"source_id": cfg.ID,
			"category":  category,
			"error":     result.Err.Error(),
		})
	}

	candidates := sources.MergeCurated(cfg, category, live)
	result.Candidates = len(candidates)

	resources := make([]domain.Resource, 0, len(candidates))
	for _, c := range candidates {
		resources = append(resources, catalog.NewResource(c, s.describe(ctx, c), retrieved))
	}

	s.log.InfoObj("source fetch completed", "source_result", map[string]any{
		"source_id":  cfg.ID,
		"category":   category,
		"candidates": len(candidates),
		"live":       len(live),
		"failed":     result.Err != nil,
	})

	return result, resources
}

// describe resolves the cleaned description for a candidate, consulting the
// cache first and memoizing fresh summaries. Cache errors are downgraded to
// warnings; the cleaner itself never fails.
func (s *Service) describe(ctx context.Context, c domain.Candidate) string {
	if s.cache != nil {
		cached, ok, err := s.cache.GetDescription(c.URL)
		if err != nil {
			s.log.WarnObj("description cache lookup failed", "cache_error", map[string]any{
				"url":   c.URL,
				"error": err.Error(),
			})
		} else if ok {
			return cached
		}
	}

	var cleaned string
	if s.cleaner != nil {
		cleaned = s.cleaner.Clean(ctx, c.Title, c.Description, c.Category)
	}

	if cleaned != "" && s.cache != nil {
		if err := s.cache.PutDescription(c.URL, cleaned); err != nil {
			s.log.WarnObj("description cache store failed", "cache_error", map[string]any{
				"url":   c.URL,
				"error": err.Error(),
			})
		}
	}

	return cleaned
}

// politeWait sleeps for the configured delay unless this was the final
// invocation or the context ends first. Returns false when the wait was
// interrupted by cancellation.
func (s *Service) politeWait(ctx context.Context, delay time.Duration, last bool) bool {
	if last || delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
