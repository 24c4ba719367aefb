package events

import (
	"time"

	"stellium-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Check-in events

// CheckInLogged is raised when a new check-in is recorded
type CheckInLogged struct {
	BaseEvent
	CheckInID valueobjects.CheckInID `json:"check_in_id"`
	UserID    string                 `json:"user_id"`
	DayKey    string                 `json:"day_key"`
}

// NewCheckInLogged creates a CheckInLogged event
func NewCheckInLogged(checkInID valueobjects.CheckInID, userID string, dayKey valueobjects.DayKey, timestamp time.Time) CheckInLogged {
	return CheckInLogged{
		BaseEvent: BaseEvent{
			AggregateID: checkInID.String(),
			EventType:   "checkin.logged",
			Timestamp:   timestamp,
			Version:     1,
		},
		CheckInID: checkInID,
		UserID:    userID,
		DayKey:    dayKey.String(),
	}
}

// CheckInDeleted is raised when a check-in is soft deleted
type CheckInDeleted struct {
	BaseEvent
	CheckInID valueobjects.CheckInID `json:"check_in_id"`
	UserID    string                 `json:"user_id"`
}

// NewCheckInDeleted creates a CheckInDeleted event
func NewCheckInDeleted(checkInID valueobjects.CheckInID, userID string, timestamp time.Time) CheckInDeleted {
	return CheckInDeleted{
		BaseEvent: BaseEvent{
			AggregateID: checkInID.String(),
			EventType:   "checkin.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		CheckInID: checkInID,
		UserID:    userID,
	}
}

// Journal events

// JournalEntryWritten is raised when a new journal entry is saved
type JournalEntryWritten struct {
	BaseEvent
	EntryID   valueobjects.EntryID `json:"entry_id"`
	UserID    string               `json:"user_id"`
	DayKey    string               `json:"day_key"`
	WordCount int                  `json:"word_count"`
}

// NewJournalEntryWritten creates a JournalEntryWritten event
func NewJournalEntryWritten(entryID valueobjects.EntryID, userID string, dayKey valueobjects.DayKey, wordCount int, timestamp time.Time) JournalEntryWritten {
	return JournalEntryWritten{
		BaseEvent: BaseEvent{
			AggregateID: entryID.String(),
			EventType:   "journal.written",
			Timestamp:   timestamp,
			Version:     1,
		},
		EntryID:   entryID,
		UserID:    userID,
		DayKey:    dayKey.String(),
		WordCount: wordCount,
	}
}

// JournalEntryUpdated is raised when an entry's text is edited
type JournalEntryUpdated struct {
	BaseEvent
	EntryID   valueobjects.EntryID `json:"entry_id"`
	WordCount int                  `json:"word_count"`
}

// NewJournalEntryUpdated creates a JournalEntryUpdated event
func NewJournalEntryUpdated(entryID valueobjects.EntryID, wordCount int, timestamp time.Time) JournalEntryUpdated {
	return JournalEntryUpdated{
		BaseEvent: BaseEvent{
			AggregateID: entryID.String(),
			EventType:   "journal.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		EntryID:   entryID,
		WordCount: wordCount,
	}
}

// JournalEntryDeleted is raised when an entry is soft deleted
type JournalEntryDeleted struct {
	BaseEvent
	EntryID valueobjects.EntryID `json:"entry_id"`
	UserID  string               `json:"user_id"`
}

// NewJournalEntryDeleted creates a JournalEntryDeleted event
func NewJournalEntryDeleted(entryID valueobjects.EntryID, userID string, timestamp time.Time) JournalEntryDeleted {
	return JournalEntryDeleted{
		BaseEvent: BaseEvent{
			AggregateID: entryID.String(),
			EventType:   "journal.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		EntryID: entryID,
		UserID:  userID,
	}
}

// Insight events

// InsightsComputed is raised after the pipeline produces a fresh bundle
type InsightsComputed struct {
	BaseEvent
	UserID    string `json:"user_id"`
	CacheKey  string `json:"cache_key"`
	CardCount int    `json:"card_count"`
}

// NewInsightsComputed creates an InsightsComputed event
func NewInsightsComputed(userID, cacheKey string, cardCount int, timestamp time.Time) InsightsComputed {
	return InsightsComputed{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "insights.computed",
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:    userID,
		CacheKey:  cacheKey,
		CardCount: cardCount,
	}
}
