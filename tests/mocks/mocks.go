// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/events"
	"stellium-backend/domain/insights"
)

// MockCheckInRepository mocks ports.CheckInRepository
type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) Save(ctx context.Context, checkIn *entities.CheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockCheckInRepository) GetByID(ctx context.Context, userID string, id valueobjects.CheckInID) (*entities.CheckIn, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) GetRecent(ctx context.Context, userID string, days int) ([]*entities.CheckIn, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.CheckIn, string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*entities.CheckIn), args.String(1), args.Error(2)
}

// MockJournalEntryRepository mocks ports.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) Save(ctx context.Context, entry *entities.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) GetByID(ctx context.Context, userID string, id valueobjects.EntryID) (*entities.JournalEntry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) GetRecent(ctx context.Context, userID string, days int) ([]*entities.JournalEntry, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) GetUnenriched(ctx context.Context, userID string, limit int) ([]*entities.JournalEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.JournalEntry, string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*entities.JournalEntry), args.String(1), args.Error(2)
}

// MockProfileRepository mocks ports.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

// MockInsightCacheStore mocks ports.InsightCacheStore
type MockInsightCacheStore struct {
	mock.Mock
}

func (m *MockInsightCacheStore) Get(ctx context.Context, userID, key string) (*insights.InsightBundle, bool, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*insights.InsightBundle), args.Bool(1), args.Error(2)
}

func (m *MockInsightCacheStore) Set(ctx context.Context, userID, key string, bundle *insights.InsightBundle) error {
	args := m.Called(ctx, userID, key, bundle)
	return args.Error(0)
}

// MockBundleCache mocks ports.BundleCache
type MockBundleCache struct {
	mock.Mock
}

func (m *MockBundleCache) Get(key string) (*insights.InsightBundle, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*insights.InsightBundle), args.Bool(1)
}

func (m *MockBundleCache) Set(key string, bundle *insights.InsightBundle) {
	m.Called(key, bundle)
}

// MockChartGenerator mocks ports.ChartGenerator
type MockChartGenerator struct {
	mock.Mock
}

func (m *MockChartGenerator) GenerateChart(ctx context.Context, birth valueobjects.BirthData) (*insights.Chart, error) {
	args := m.Called(ctx, birth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insights.Chart), args.Error(1)
}

// MockNlpEnricher mocks ports.NlpEnricher
type MockNlpEnricher struct {
	mock.Mock
}

func (m *MockNlpEnricher) Enrich(ctx context.Context, text string) (*entities.NlpEnrichment, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NlpEnrichment), args.Error(1)
}

// MockEventBus mocks ports.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType string, handler ports.EventHandler) error {
	args := m.Called(eventType, handler)
	return args.Error(0)
}

func (m *MockEventBus) Unsubscribe(eventType string, handler ports.EventHandler) error {
	args := m.Called(eventType, handler)
	return args.Error(0)
}
