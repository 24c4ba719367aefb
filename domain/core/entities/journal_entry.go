package entities

import (
	"strings"
	"time"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/events"
	pkgerrors "stellium-backend/pkg/errors"
)

// NlpEnrichment holds the derived language signals for an entry.
// All fields are produced by the enrichment service after the entry is
// saved; an entry without enrichment still counts toward journaling
// consistency, it just contributes nothing to keyword or emotion lift.
type NlpEnrichment struct {
	Keywords      []string       `json:"keywords"`
	EmotionCounts map[string]int `json:"emotion_counts"`
	Sentiment     *float64       `json:"sentiment,omitempty"`
}

// JournalEntry is a free-text reflection written by the user
type JournalEntry struct {
	id         valueobjects.EntryID
	userID     string
	text       string
	wordCount  int
	enrichment *NlpEnrichment
	dayKey     valueobjects.DayKey
	writtenAt  time.Time
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
	version    int

	events []events.DomainEvent
}

// NewJournalEntry creates an entry with business rule validation
func NewJournalEntry(userID, text string, writtenAt time.Time, cfg *config.DomainConfig) (*JournalEntry, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.NewValidationError("journal text cannot be empty")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(text) > cfg.MaxJournalTextLength {
		return nil, pkgerrors.NewValidationError("journal text exceeds maximum length")
	}
	if writtenAt.IsZero() {
		writtenAt = time.Now()
	}

	now := time.Now()
	entry := &JournalEntry{
		id:        valueobjects.NewEntryID(),
		userID:    userID,
		text:      text,
		wordCount: countWords(text),
		dayKey:    valueobjects.NewDayKey(writtenAt),
		writtenAt: writtenAt,
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	entry.addEvent(events.NewJournalEntryWritten(entry.id, userID, entry.dayKey, entry.wordCount, now))

	return entry, nil
}

// ReconstructJournalEntry rebuilds an entry from repository data
func ReconstructJournalEntry(
	id valueobjects.EntryID,
	userID, text string,
	enrichment *NlpEnrichment,
	dayKey valueobjects.DayKey,
	writtenAt, createdAt, updatedAt time.Time,
	deletedAt *time.Time,
	version int,
) (*JournalEntry, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if id.IsEmpty() {
		return nil, pkgerrors.NewValidationError("entry ID cannot be empty")
	}

	return &JournalEntry{
		id:         id,
		userID:     userID,
		text:       text,
		wordCount:  countWords(text),
		enrichment: enrichment,
		dayKey:     dayKey,
		writtenAt:  writtenAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		deletedAt:  deletedAt,
		version:    version,
		events:     []events.DomainEvent{},
	}, nil
}

// Edit replaces the entry text. Editing invalidates any prior
// enrichment, which the backfill worker re-derives later.
func (j *JournalEntry) Edit(text string, cfg *config.DomainConfig) error {
	if j.deletedAt != nil {
		return pkgerrors.NewConflictError("cannot edit a deleted entry")
	}
	if strings.TrimSpace(text) == "" {
		return pkgerrors.NewValidationError("journal text cannot be empty")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(text) > cfg.MaxJournalTextLength {
		return pkgerrors.NewValidationError("journal text exceeds maximum length")
	}

	now := time.Now()
	j.text = text
	j.wordCount = countWords(text)
	j.enrichment = nil
	j.updatedAt = now
	j.version++
	j.addEvent(events.NewJournalEntryUpdated(j.id, j.wordCount, now))
	return nil
}

// ApplyEnrichment attaches derived language signals to the entry
func (j *JournalEntry) ApplyEnrichment(enrichment NlpEnrichment) {
	j.enrichment = &enrichment
	j.updatedAt = time.Now()
	j.version++
}

// Delete soft-deletes the entry
func (j *JournalEntry) Delete() error {
	if j.deletedAt != nil {
		return pkgerrors.NewConflictError("entry is already deleted")
	}
	now := time.Now()
	j.deletedAt = &now
	j.updatedAt = now
	j.version++
	j.addEvent(events.NewJournalEntryDeleted(j.id, j.userID, now))
	return nil
}

// Getters

func (j *JournalEntry) ID() valueobjects.EntryID    { return j.id }
func (j *JournalEntry) UserID() string              { return j.userID }
func (j *JournalEntry) Text() string                { return j.text }
func (j *JournalEntry) WordCount() int              { return j.wordCount }
func (j *JournalEntry) Enrichment() *NlpEnrichment  { return j.enrichment }
func (j *JournalEntry) DayKey() valueobjects.DayKey { return j.dayKey }
func (j *JournalEntry) WrittenAt() time.Time        { return j.writtenAt }
func (j *JournalEntry) CreatedAt() time.Time        { return j.createdAt }
func (j *JournalEntry) UpdatedAt() time.Time        { return j.updatedAt }
func (j *JournalEntry) DeletedAt() *time.Time       { return j.deletedAt }
func (j *JournalEntry) Version() int                { return j.version }
func (j *JournalEntry) IsDeleted() bool             { return j.deletedAt != nil }
func (j *JournalEntry) IsEnriched() bool            { return j.enrichment != nil }

// Event management

func (j *JournalEntry) addEvent(event events.DomainEvent) {
	j.events = append(j.events, event)
}

// GetUncommittedEvents returns events not yet published
func (j *JournalEntry) GetUncommittedEvents() []events.DomainEvent {
	return j.events
}

// MarkEventsAsCommitted clears the event list after publishing
func (j *JournalEntry) MarkEventsAsCommitted() {
	j.events = []events.DomainEvent{}
}

// countWords counts whitespace-separated tokens
func countWords(text string) int {
	return len(strings.Fields(text))
}
