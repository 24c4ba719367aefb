package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/commands"
	commandbus "stellium-backend/application/commands/bus"
	"stellium-backend/application/queries"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/application/services"
	domainconfig "stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/insights"
	"stellium-backend/infrastructure/messaging/eventbridge"
	"stellium-backend/infrastructure/persistence/memory"
	apperrors "stellium-backend/pkg/errors"
	"stellium-backend/pkg/observability"
)

// memCheckInRepo is an in-memory CheckInRepository for wiring the full
// stack without DynamoDB
type memCheckInRepo struct {
	mu    sync.Mutex
	items map[string][]*entities.CheckIn
}

func newMemCheckInRepo() *memCheckInRepo {
	return &memCheckInRepo{items: make(map[string][]*entities.CheckIn)}
}

func (r *memCheckInRepo) Save(ctx context.Context, checkIn *entities.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items[checkIn.UserID()] {
		if existing.ID().Equals(checkIn.ID()) {
			r.items[checkIn.UserID()][i] = checkIn
			return nil
		}
	}
	r.items[checkIn.UserID()] = append(r.items[checkIn.UserID()], checkIn)
	return nil
}

func (r *memCheckInRepo) GetByID(ctx context.Context, userID string, id valueobjects.CheckInID) (*entities.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, checkIn := range r.items[userID] {
		if checkIn.ID().Equals(id) {
			return checkIn, nil
		}
	}
	return nil, apperrors.NewNotFoundError("check-in")
}

func (r *memCheckInRepo) GetRecent(ctx context.Context, userID string, days int) ([]*entities.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	var out []*entities.CheckIn
	for _, checkIn := range r.items[userID] {
		if checkIn.IsDeleted() || checkIn.LoggedAt().Before(cutoff) {
			continue
		}
		out = append(out, checkIn)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoggedAt().After(out[j].LoggedAt())
	})
	return out, nil
}

func (r *memCheckInRepo) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.CheckIn, string, error) {
	recent, err := r.GetRecent(ctx, userID, 3650)
	if err != nil {
		return nil, "", err
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, "", nil
}

// memJournalRepo is an in-memory JournalEntryRepository
type memJournalRepo struct {
	mu    sync.Mutex
	items map[string][]*entities.JournalEntry
}

func newMemJournalRepo() *memJournalRepo {
	return &memJournalRepo{items: make(map[string][]*entities.JournalEntry)}
}

func (r *memJournalRepo) Save(ctx context.Context, entry *entities.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items[entry.UserID()] {
		if existing.ID().Equals(entry.ID()) {
			r.items[entry.UserID()][i] = entry
			return nil
		}
	}
	r.items[entry.UserID()] = append(r.items[entry.UserID()], entry)
	return nil
}

func (r *memJournalRepo) GetByID(ctx context.Context, userID string, id valueobjects.EntryID) (*entities.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.items[userID] {
		if entry.ID().Equals(id) {
			return entry, nil
		}
	}
	return nil, apperrors.NewNotFoundError("journal entry")
}

func (r *memJournalRepo) GetRecent(ctx context.Context, userID string, days int) ([]*entities.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	var out []*entities.JournalEntry
	for _, entry := range r.items[userID] {
		if entry.IsDeleted() || entry.WrittenAt().Before(cutoff) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WrittenAt().After(out[j].WrittenAt())
	})
	return out, nil
}

func (r *memJournalRepo) GetUnenriched(ctx context.Context, userID string, limit int) ([]*entities.JournalEntry, error) {
	recent, err := r.GetRecent(ctx, userID, 3650)
	if err != nil {
		return nil, err
	}
	var out []*entities.JournalEntry
	for _, entry := range recent {
		if entry.IsEnriched() {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memJournalRepo) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.JournalEntry, string, error) {
	recent, err := r.GetRecent(ctx, userID, 3650)
	if err != nil {
		return nil, "", err
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, "", nil
}

// memProfileRepo is an in-memory ProfileRepository
type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entities.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*entities.Profile)}
}

func (r *memProfileRepo) Save(ctx context.Context, profile *entities.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID()] = profile
	return nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile")
	}
	return profile, nil
}

// memCacheStore is an in-memory InsightCacheStore standing in for the
// persisted tier
type memCacheStore struct {
	mu      sync.Mutex
	bundles map[string]*insights.InsightBundle
	sets    int
}

func newMemCacheStore() *memCacheStore {
	return &memCacheStore{bundles: make(map[string]*insights.InsightBundle)}
}

func (s *memCacheStore) Get(ctx context.Context, userID, key string) (*insights.InsightBundle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bundle, ok := s.bundles[userID+"|"+key]
	return bundle, ok, nil
}

func (s *memCacheStore) Set(ctx context.Context, userID, key string, bundle *insights.InsightBundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[userID+"|"+key] = bundle
	s.sets++
	return nil
}

// stubEnricher returns a fixed enrichment for every text
type stubEnricher struct{}

func (stubEnricher) Enrich(ctx context.Context, text string) (*entities.NlpEnrichment, error) {
	sentiment := 0.4
	return &entities.NlpEnrichment{
		Keywords:      []string{"work", "sleep"},
		EmotionCounts: map[string]int{"calm": 2},
		Sentiment:     &sentiment,
	}, nil
}

type testEnv struct {
	checkInRepo *memCheckInRepo
	journalRepo *memJournalRepo
	profileRepo *memProfileRepo
	cacheStore  *memCacheStore
	logCheckIn  *commands.LogCheckInHandler
	writeEntry  *commands.WriteJournalEntryHandler
	commandBus  *commandbus.CommandBus
	queryBus    *querybus.QueryBus
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	domainCfg := domainconfig.DefaultDomainConfig()
	checkInRepo := newMemCheckInRepo()
	journalRepo := newMemJournalRepo()
	profileRepo := newMemProfileRepo()
	cacheStore := newMemCacheStore()
	bundleCache := memory.NewLRUBundleCache(16)
	enricher := stubEnricher{}
	eventBus := eventbridge.NewEventBridgeBus(nil, "test-bus", logger)
	metrics := observability.NewMetrics("test", nil, logger)

	pipeline := services.NewInsightPipeline(
		checkInRepo, journalRepo, profileRepo,
		nil, enricher,
		bundleCache, cacheStore,
		eventBus, metrics, domainCfg, logger,
	)

	commandBus := commandbus.NewCommandBus()
	deleteCheckIn := commands.NewDeleteCheckInHandler(checkInRepo, eventBus, logger)
	if err := commandBus.Register(commands.DeleteCheckInCommand{},
		commandbus.CommandHandlerFunc(func(ctx context.Context, cmd commandbus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteCheckInCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteCheckIn.Handle(ctx, deleteCmd)
		})); err != nil {
		t.Fatalf("failed to register delete handler: %v", err)
	}

	queryBus := querybus.NewQueryBus()
	getInsights := queries.NewGetInsightsHandler(pipeline)
	if err := queryBus.Register(queries.GetInsightsQuery{},
		querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetInsightsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getInsights.Handle(ctx, getQuery)
		})); err != nil {
		t.Fatalf("failed to register insights handler: %v", err)
	}

	return &testEnv{
		checkInRepo: checkInRepo,
		journalRepo: journalRepo,
		profileRepo: profileRepo,
		cacheStore:  cacheStore,
		logCheckIn:  commands.NewLogCheckInHandler(checkInRepo, eventBus, domainCfg, logger),
		writeEntry:  commands.NewWriteJournalEntryHandler(journalRepo, enricher, eventBus, domainCfg, logger),
		commandBus:  commandBus,
		queryBus:    queryBus,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// TestInsightFlow drives the full write-then-read path: check-ins and
// journal entries go in through the command handlers, insights come
// out through the query bus, and repeated reads hit the cache.
func TestInsightFlow(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	userID := "user-flow-1"

	// anchored two days back so the later "new check-in" lands on its
	// own calendar day without ever reaching the current day
	now := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 14; i++ {
		cmd := commands.LogCheckInCommand{
			UserID:   userID,
			Mood:     intPtr(5 + i%3),
			Stress:   strPtr("medium"),
			Energy:   intPtr(6),
			Tags:     []string{"work"},
			LoggedAt: now.AddDate(0, 0, -i),
		}
		if _, err := env.logCheckIn.Handle(ctx, cmd); err != nil {
			t.Fatalf("failed to log check-in %d: %v", i, err)
		}
	}

	for i := 0; i < 5; i++ {
		cmd := commands.WriteJournalEntryCommand{
			UserID:    userID,
			Text:      "Slept well and the morning felt unusually calm before standup.",
			WrittenAt: now.AddDate(0, 0, -i*2),
		}
		if _, err := env.writeEntry.Handle(ctx, cmd); err != nil {
			t.Fatalf("failed to write journal entry %d: %v", i, err)
		}
	}

	var first *insights.InsightBundle

	t.Run("first read computes a bundle", func(t *testing.T) {
		result, err := env.queryBus.Ask(ctx, queries.GetInsightsQuery{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		bundle, ok := result.(*insights.InsightBundle)
		if !ok {
			t.Fatalf("expected *insights.InsightBundle, got %T", result)
		}
		if bundle.SampleSize != 14 {
			t.Errorf("expected sample size 14, got %d", bundle.SampleSize)
		}
		if bundle.Confidence != insights.ConfidenceMedium {
			t.Errorf("expected medium confidence at 14 samples, got %s", bundle.Confidence)
		}
		if bundle.JournalingImpact == nil {
			t.Error("expected journaling impact with journal entries present")
		}
		if len(bundle.ChartBaselines) != 0 {
			t.Errorf("expected no chart baselines without birth data, got %d", len(bundle.ChartBaselines))
		}
		if env.cacheStore.sets != 1 {
			t.Errorf("expected one persisted cache write, got %d", env.cacheStore.sets)
		}
		first = bundle
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		result, err := env.queryBus.Ask(ctx, queries.GetInsightsQuery{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		bundle := result.(*insights.InsightBundle)
		if bundle != first {
			t.Error("expected the cached bundle instance on a repeat read")
		}
		if env.cacheStore.sets != 1 {
			t.Errorf("expected no additional cache writes, got %d", env.cacheStore.sets)
		}
	})

	t.Run("new check-in invalidates by key", func(t *testing.T) {
		cmd := commands.LogCheckInCommand{
			UserID:   userID,
			Mood:     intPtr(8),
			LoggedAt: now.Add(24 * time.Hour),
		}
		if _, err := env.logCheckIn.Handle(ctx, cmd); err != nil {
			t.Fatalf("failed to log check-in: %v", err)
		}

		result, err := env.queryBus.Ask(ctx, queries.GetInsightsQuery{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		bundle := result.(*insights.InsightBundle)
		if bundle == first {
			t.Error("expected a recomputed bundle after a new check-in")
		}
		if bundle.SampleSize != 15 {
			t.Errorf("expected sample size 15, got %d", bundle.SampleSize)
		}
	})

	t.Run("deleting the newest check-in recomputes", func(t *testing.T) {
		recent, err := env.checkInRepo.GetRecent(ctx, userID, 90)
		if err != nil {
			t.Fatalf("failed to fetch check-ins: %v", err)
		}
		newest := recent[0]

		cmd := commands.DeleteCheckInCommand{
			UserID:    userID,
			CheckInID: newest.ID().String(),
		}
		if err := env.commandBus.Send(ctx, cmd); err != nil {
			t.Fatalf("failed to delete check-in: %v", err)
		}

		result, err := env.queryBus.Ask(ctx, queries.GetInsightsQuery{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		bundle := result.(*insights.InsightBundle)
		if bundle.SampleSize != 14 {
			t.Errorf("expected sample size 14 after delete, got %d", bundle.SampleSize)
		}
	})

	t.Run("journal entries got enriched on write", func(t *testing.T) {
		entries, err := env.journalRepo.GetRecent(ctx, userID, 90)
		if err != nil {
			t.Fatalf("failed to fetch entries: %v", err)
		}
		if len(entries) != 5 {
			t.Fatalf("expected 5 entries, got %d", len(entries))
		}
		for _, entry := range entries {
			if !entry.IsEnriched() {
				t.Errorf("expected entry %s to be enriched", entry.ID())
			}
		}
	})
}

// TestInsightFlowEmptyHistory verifies a brand-new user still gets a
// well-formed bundle
func TestInsightFlowEmptyHistory(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	result, err := env.queryBus.Ask(ctx, queries.GetInsightsQuery{UserID: "user-empty"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	bundle, ok := result.(*insights.InsightBundle)
	if !ok {
		t.Fatalf("expected *insights.InsightBundle, got %T", result)
	}
	if bundle.SampleSize != 0 {
		t.Errorf("expected sample size 0, got %d", bundle.SampleSize)
	}
	if bundle.Confidence != insights.ConfidenceLow {
		t.Errorf("expected low confidence, got %s", bundle.Confidence)
	}
	if len(bundle.Trends) != 0 {
		t.Errorf("expected no trends with no data, got %d", len(bundle.Trends))
	}
}
