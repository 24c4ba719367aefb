package ports

import (
	"context"

	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/events"
	"stellium-backend/domain/insights"
)

// CheckInRepository defines the interface for check-in persistence.
// This is a port in hexagonal architecture - the domain doesn't know
// about the implementation.
type CheckInRepository interface {
	// Save persists a check-in (create or update)
	Save(ctx context.Context, checkIn *entities.CheckIn) error

	// GetByID retrieves one check-in owned by the user
	GetByID(ctx context.Context, userID string, id valueobjects.CheckInID) (*entities.CheckIn, error)

	// GetRecent retrieves the user's check-ins for the trailing window,
	// soft-delete filtered and ordered by recency
	GetRecent(ctx context.Context, userID string, days int) ([]*entities.CheckIn, error)

	// List pages through the user's check-ins, newest first
	List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.CheckIn, string, error)
}

// JournalEntryRepository defines the interface for journal persistence
type JournalEntryRepository interface {
	// Save persists an entry (create or update)
	Save(ctx context.Context, entry *entities.JournalEntry) error

	// GetByID retrieves one entry owned by the user
	GetByID(ctx context.Context, userID string, id valueobjects.EntryID) (*entities.JournalEntry, error)

	// GetRecent retrieves the user's entries for the trailing window,
	// soft-delete filtered and ordered by recency
	GetRecent(ctx context.Context, userID string, days int) ([]*entities.JournalEntry, error)

	// GetUnenriched retrieves entries still waiting for NLP enrichment
	GetUnenriched(ctx context.Context, userID string, limit int) ([]*entities.JournalEntry, error)

	// List pages through the user's entries, newest first
	List(ctx context.Context, userID string, limit int, nextToken string) ([]*entities.JournalEntry, string, error)
}

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// Save persists a profile (create or update)
	Save(ctx context.Context, profile *entities.Profile) error

	// GetByUserID retrieves the user's profile
	GetByUserID(ctx context.Context, userID string) (*entities.Profile, error)
}

// InsightCacheStore is the persisted cache tier. A key embeds every
// correctness-relevant pipeline input, so entries never need explicit
// invalidation; they survive process restarts.
type InsightCacheStore interface {
	// Get retrieves a bundle; found is false on a miss
	Get(ctx context.Context, userID, key string) (*insights.InsightBundle, bool, error)

	// Set stores a bundle under the key, last write wins
	Set(ctx context.Context, userID, key string, bundle *insights.InsightBundle) error
}

// BundleCache is the in-memory cache tier checked before the persisted
// store. Implementations bound their size; eviction is always safe
// because a key fully determines its bundle.
type BundleCache interface {
	// Get retrieves a bundle from memory
	Get(key string) (*insights.InsightBundle, bool)

	// Set stores a bundle in memory
	Set(key string, bundle *insights.InsightBundle)
}

// ChartGenerator produces a natal chart from birth data. Treated as a
// pure black box; the ephemeris math lives on the other side.
type ChartGenerator interface {
	GenerateChart(ctx context.Context, birth valueobjects.BirthData) (*insights.Chart, error)
}

// NlpEnricher derives keywords, emotion counts, and sentiment from
// journal text. Best-effort: failures are logged, never fatal.
type NlpEnricher interface {
	Enrich(ctx context.Context, text string) (*entities.NlpEnrichment, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus defines the interface for publishing and subscribing to
// domain events
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for an event type
	Subscribe(eventType string, handler EventHandler) error

	// Unsubscribe removes a handler
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event events.DomainEvent) error

	// CanHandle checks if this handler can process the event
	CanHandle(eventType string) bool
}
