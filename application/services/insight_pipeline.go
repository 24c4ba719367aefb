package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/events"
	"stellium-backend/domain/insights"
	"stellium-backend/pkg/observability"
)

const nlpBackfillBatch = 25

// InsightPipeline orchestrates one full insight computation: fetch the
// raw window, backfill NLP enrichment, derive the chart profile, check
// both cache tiers, compute on a miss, and store the result.
//
// The cache is an injected dependency, never package state, so
// pipelines are independently testable. Two concurrent misses may both
// recompute and both write; that is safe because computation is a
// deterministic function of the cache key's inputs and writes are
// last-write-wins.
type InsightPipeline struct {
	checkInRepo ports.CheckInRepository
	journalRepo ports.JournalEntryRepository
	profileRepo ports.ProfileRepository
	chartGen    ports.ChartGenerator
	enricher    ports.NlpEnricher
	memory      ports.BundleCache
	store       ports.InsightCacheStore
	eventBus    ports.EventBus
	metrics     *observability.Metrics
	domainCfg   *config.DomainConfig
	logger      *zap.Logger
	now         func() time.Time

	// generations guards the cache write per user: a run that started
	// before a newer run for the same user finished must not overwrite
	// the newer result. Keyed per user so concurrent runs for
	// different users never suppress each other's writes.
	generations sync.Map // userID -> *atomic.Uint64
}

// NewInsightPipeline creates a pipeline with all collaborators injected
func NewInsightPipeline(
	checkInRepo ports.CheckInRepository,
	journalRepo ports.JournalEntryRepository,
	profileRepo ports.ProfileRepository,
	chartGen ports.ChartGenerator,
	enricher ports.NlpEnricher,
	memory ports.BundleCache,
	store ports.InsightCacheStore,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	domainCfg *config.DomainConfig,
	logger *zap.Logger,
) *InsightPipeline {
	return &InsightPipeline{
		checkInRepo: checkInRepo,
		journalRepo: journalRepo,
		profileRepo: profileRepo,
		chartGen:    chartGen,
		enricher:    enricher,
		memory:      memory,
		store:       store,
		eventBus:    eventBus,
		metrics:     metrics,
		domainCfg:   domainCfg,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the pipeline clock, for tests
func (p *InsightPipeline) WithClock(now func() time.Time) *InsightPipeline {
	p.now = now
	return p
}

// generationFor returns the user's run counter, creating it on first use
func (p *InsightPipeline) generationFor(userID string) *atomic.Uint64 {
	counter, _ := p.generations.LoadOrStore(userID, &atomic.Uint64{})
	return counter.(*atomic.Uint64)
}

// Run computes or retrieves the user's insight bundle
func (p *InsightPipeline) Run(ctx context.Context, userID string) (*insights.InsightBundle, error) {
	counter := p.generationFor(userID)
	gen := counter.Add(1)
	start := p.now()

	profile := p.loadProfile(ctx, userID)
	loc := time.UTC
	if profile != nil {
		loc = profile.Location()
	}

	checkIns, err := p.checkInRepo.GetRecent(ctx, userID, p.domainCfg.HistoryWindowDays)
	if err != nil {
		return nil, err
	}
	// backfill before the window fetch so freshly enriched entries come
	// back enriched; idempotent and best-effort on every run
	p.backfillNlp(ctx, userID)

	entries, err := p.journalRepo.GetRecent(ctx, userID, p.domainCfg.HistoryWindowDays)
	if err != nil {
		return nil, err
	}

	chartProfile := p.deriveChartProfile(ctx, userID, profile)

	today := valueobjects.NewDayKeyIn(start, loc)
	chartHash := ""
	if chartProfile != nil {
		chartHash = chartProfile.VersionHash
	}
	key := insights.MakeCacheKey(userID, lastUpdatedCheckIn(checkIns), lastUpdatedJournal(entries), today, chartHash)

	if bundle, tier := p.cachedBundle(ctx, userID, key); bundle != nil {
		p.metrics.RecordPipelineRun(ctx, p.now().Sub(start), tier, nil)
		return bundle, nil
	}

	aggs := insights.Aggregate(checkIns, entries, p.logger)
	bundle := insights.Compute(aggs, chartProfile, p.domainCfg, start, today)

	// a newer run for this user has started; its inputs supersede
	// ours, so only it may populate the cache. The computed bundle is
	// still returned.
	if counter.Load() == gen {
		p.storeBundle(ctx, userID, key, bundle)
	}

	if p.eventBus != nil {
		event := events.NewInsightsComputed(userID, key, len(bundle.BlendedCards)+len(bundle.ChartBaselines), p.now())
		if err := p.eventBus.Publish(ctx, event); err != nil {
			p.logger.Warn("failed to publish insights event", zap.String("user_id", userID), zap.Error(err))
		}
	}

	p.metrics.RecordPipelineRun(ctx, p.now().Sub(start), "compute", nil)
	return bundle, nil
}

// loadProfile fetches the user's profile; a missing profile is a
// normal state, not an error
func (p *InsightPipeline) loadProfile(ctx context.Context, userID string) *entities.Profile {
	profile, err := p.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		p.logger.Debug("no profile available", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return profile
}

// backfillNlp enriches entries that were saved before enrichment was
// available, querying the pending set directly rather than scanning
// the history window. Failures are logged and skipped; the pipeline
// never aborts over enrichment.
func (p *InsightPipeline) backfillNlp(ctx context.Context, userID string) {
	if p.enricher == nil {
		return
	}

	pending, err := p.journalRepo.GetUnenriched(ctx, userID, nlpBackfillBatch)
	if err != nil {
		p.logger.Warn("nlp backfill query failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}

	for _, entry := range pending {
		enrichment, err := p.enricher.Enrich(ctx, entry.Text())
		if err != nil {
			p.logger.Warn("nlp backfill failed for entry",
				zap.String("entry_id", entry.ID().String()),
				zap.Error(err))
			continue
		}
		if enrichment == nil {
			continue
		}
		entry.ApplyEnrichment(*enrichment)
		if err := p.journalRepo.Save(ctx, entry); err != nil {
			p.logger.Warn("failed to persist backfilled enrichment",
				zap.String("entry_id", entry.ID().String()),
				zap.Error(err))
		}
	}
}

// deriveChartProfile generates and reduces the chart. Any failure
// degrades to a nil profile: chart-dependent sections disappear,
// everything else still renders.
func (p *InsightPipeline) deriveChartProfile(ctx context.Context, userID string, profile *entities.Profile) *insights.ChartProfile {
	if p.chartGen == nil || profile == nil || !profile.HasBirthData() {
		return nil
	}

	chart, err := p.chartGen.GenerateChart(ctx, *profile.BirthData())
	if err != nil {
		p.logger.Warn("chart generation failed, continuing without chart sections",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil
	}
	return insights.DeriveChartProfile(chart)
}

// cachedBundle checks memory first, then the persisted store,
// promoting persisted hits into memory. Store errors are cache misses,
// never pipeline failures.
func (p *InsightPipeline) cachedBundle(ctx context.Context, userID, key string) (*insights.InsightBundle, string) {
	if p.memory != nil {
		if bundle, ok := p.memory.Get(key); ok {
			p.metrics.RecordCacheLookup(ctx, "memory", true)
			return bundle, "memory"
		}
		p.metrics.RecordCacheLookup(ctx, "memory", false)
	}

	if p.store == nil {
		return nil, ""
	}

	bundle, found, err := p.store.Get(ctx, userID, key)
	if err != nil {
		p.logger.Warn("persisted cache read failed, recomputing",
			zap.String("user_id", userID),
			zap.Error(err))
		p.metrics.RecordCacheLookup(ctx, "persisted", false)
		return nil, ""
	}
	p.metrics.RecordCacheLookup(ctx, "persisted", found)
	if !found {
		return nil, ""
	}

	if p.memory != nil {
		p.memory.Set(key, bundle)
	}
	return bundle, "persisted"
}

// storeBundle writes both tiers; a failed persisted write is logged
// and swallowed, the computed bundle is still served
func (p *InsightPipeline) storeBundle(ctx context.Context, userID, key string, bundle *insights.InsightBundle) {
	if p.memory != nil {
		p.memory.Set(key, bundle)
	}
	if p.store == nil {
		return
	}
	if err := p.store.Set(ctx, userID, key, bundle); err != nil {
		p.logger.Warn("persisted cache write failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func lastUpdatedCheckIn(checkIns []*entities.CheckIn) time.Time {
	var last time.Time
	for _, c := range checkIns {
		if c.UpdatedAt().After(last) {
			last = c.UpdatedAt()
		}
	}
	return last
}

func lastUpdatedJournal(entries []*entities.JournalEntry) time.Time {
	var last time.Time
	for _, e := range entries {
		if e.UpdatedAt().After(last) {
			last = e.UpdatedAt()
		}
	}
	return last
}
