package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/catalog"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/config"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/logger"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/pipeline"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/storage"
	"github.com/learnstack-hq/learnstack-course-harvester/pkg/describe"
	"github.com/learnstack-hq/learnstack-course-harvester/pkg/notify"
	"github.com/learnstack-hq/learnstack-course-harvester/pkg/sources"
)

// State tracks where the refresh orchestrator is in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Harvester is the refresh orchestrator runtime. It wires sources, the
// aggregation pipeline, the catalog writer, and the notification fanout, and
// drives one-shot or monthly-scheduled refresh cycles. Source and normalizer
// failures never reach it; only a catalog write failure marks a cycle Failed.
type Harvester struct {
	cfg       *config.Config
	sourceReg *sources.Registry
	pipeline  *pipeline.Service
	writer    *catalog.Writer
	fanout    *notify.Fanout
	cache     storage.Cache
	log       logger.Logger
	state     atomic.Int32
	now       func() time.Time
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count":      len(sourceIDs),
		"ids":        sourceIDs,
		"categories": sourceReg.Categories(),
	})

	cache, err := storage.NewCache(cfg.StorageType, cfg.BBoltPath, storage.Options{
		EntryTTL:        cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInt,
	})
	if err != nil {
		return nil, fmt.Errorf("init description cache: %w", err)
	}
	log.InfoObj("description cache initialized", "cache_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.CacheTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.CacheCleanupInt.Seconds()),
	})

	var cleaner pipeline.Cleaner
	if cfg.AnthropicAPIKey == "" {
		log.WarnObj("no text-generation api key; descriptions use truncation fallback", "cleaner", "static")
		cleaner = describe.StaticCleaner{}
	} else {
		cleaner = describe.NewAnthropicCleaner(cfg.AnthropicAPIKey, nil, log)
	}

	if cfg.YouTubeAPIKey == "" {
		log.WarnObj("no youtube api key; youtube sources degrade to curated fallback", "fetcher", sources.SourceTypeYouTubeSearch)
	}

	fetcherReg := sources.DefaultFetcherRegistry(nil, sources.FetcherOptions{
		YouTubeAPIKey: cfg.YouTubeAPIKey,
		MaxResults:    cfg.MaxResultsPerSource,
		HTTPTimeout:   cfg.HTTPTimeout,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		cache.Close()
		return nil, err
	}

	h := &Harvester{
		cfg:       cfg,
		sourceReg: sourceReg,
		pipeline:  pipeline.NewService(fetcherReg, cleaner, cache, log),
		writer:    catalog.NewWriter(cfg.OutputFile),
		fanout:    fanout,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
	h.state.Store(int32(StateIdle))
	return h, nil
}

// buildFanout assembles the notifier fanout; an unset notifiers file means no sinks.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*notify.Fanout, error) {
	if cfg.NotifiersFile == "" {
		return notify.NewFanout(nil), nil
	}

	notifierReg, err := notify.LoadRegistry(cfg.NotifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}

	enabled := notifierReg.Enabled()
	sinks, err := notify.BuildAll(ctx, notify.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, nc := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   nc.ID,
			"type": nc.Type,
		})
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count":     len(summaries),
		"notifiers": summaries,
	})

	return notify.NewFanout(sinks), nil
}

// State returns the orchestrator's current lifecycle state.
func (h *Harvester) State() State {
	if h == nil {
		return StateIdle
	}
	return State(h.state.Load())
}

// Run executes the refresh cycle once and, when scheduling is enabled, keeps
// running it on the monthly trigger until the context is cancelled. In
// one-shot mode a write failure propagates; in scheduled mode failed cycles
// are logged and the loop waits for the next tick regardless.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.pipeline == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.closeCache()

	err := h.RunOnce(ctx)
	if !h.cfg.Schedule {
		return err
	}
	if err != nil {
		h.log.ErrorObj("initial refresh failed", "error", err)
	}

	h.log.InfoObj("monthly refresh schedule active", "schedule", map[string]any{
		"day":  h.cfg.ScheduleDay,
		"hour": h.cfg.ScheduleHour,
	})

	for {
		next := nextMonthlyRun(h.now(), h.cfg.ScheduleDay, h.cfg.ScheduleHour)
		h.log.InfoObj("next scheduled refresh", "next_run", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			h.log.InfoObj("refresh schedule exiting", "reason", ctx.Err())
			return nil
		case <-timer.C:
			if err := h.RunOnce(ctx); err != nil {
				h.log.ErrorObj("scheduled refresh failed", "error", err)
			}
		}
	}
}

// RunOnce drives a single Idle → Running → {Completed, Failed} cycle:
// aggregate, assemble, write, notify.
func (h *Harvester) RunOnce(ctx context.Context) error {
	h.setState(StateRunning)
	start := h.now()

	cfgs := h.sourceReg.All()
	categories := h.sourceReg.Categories()
	h.log.InfoObj("refresh started", "refresh_meta", map[string]any{
		"sources_count":    len(cfgs),
		"categories_count": len(categories),
		"started_at":       start.UTC(),
	})

	resources, results, err := h.pipeline.Run(ctx, categories, cfgs)
	if err != nil {
		h.setState(StateFailed)
		return fmt.Errorf("aggregation: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	cat := catalog.New(categories, resources, start)
	if err := h.writer.Write(cat); err != nil {
		h.setState(StateFailed)
		return fmt.Errorf("write catalog: %w", err)
	}

	if h.fanout.Size() > 0 {
		evt := notify.NewCatalogEvent(cat.Generated, cat.Total, cat.Categories, h.cfg.OutputFile)
		if delivered, err := h.fanout.Notify(ctx, evt); err != nil {
			h.log.WarnObj("catalog notification partially failed", "notify_result", map[string]any{
				"delivered": delivered,
				"error":     err.Error(),
			})
		}
	}

	h.setState(StateCompleted)
	h.log.InfoObj("refresh completed", "refresh_meta", map[string]any{
		"total_resources": cat.Total,
		"failed_fetches":  failed,
		"output_file":     h.cfg.OutputFile,
		"elapsed_ms":      time.Since(start).Milliseconds(),
	})
	h.setState(StateIdle)
	return nil
}

func (h *Harvester) setState(s State) {
	h.state.Store(int32(s))
	h.log.DebugObj("orchestrator state changed", "state", s.String())
}

// closeCache safely closes the description cache, logging any errors encountered.
func (h *Harvester) closeCache() {
	if h == nil || h.cache == nil {
		return
	}
	if err := h.cache.Close(); err != nil {
		h.log.ErrorObj("description cache close failed", "error", err)
	}
}

// nextMonthlyRun returns the next day-of-month/hour occurrence strictly after now.
func nextMonthlyRun(now time.Time, day, hour int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), day, hour, 0, 0, 0, now.Location())
	if candidate.After(now) {
		return candidate
	}
	return time.Date(now.Year(), now.Month()+1, day, hour, 0, 0, 0, now.Location())
}
