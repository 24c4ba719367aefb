package entities

import (
	"strings"
	"time"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/events"
	pkgerrors "stellium-backend/pkg/errors"
)

// CheckIn is a single mood/stress/energy self-report.
// This is a rich domain model with encapsulated business logic.
type CheckIn struct {
	// Private fields ensure encapsulation
	id        valueobjects.CheckInID
	userID    string
	mood      *valueobjects.Score
	stress    *valueobjects.StressLevel
	energy    *valueobjects.Score
	tags      []string
	note      string
	dayKey    valueobjects.DayKey
	timeOfDay valueobjects.TimeOfDay
	loggedAt  time.Time
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	version   int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewCheckIn creates a check-in with full business rule validation.
// At least one of mood, stress, or energy must be present; loggedAt
// must already be expressed in the user's local timezone so the day
// key lands on the calendar day the user experienced.
func NewCheckIn(
	userID string,
	mood *valueobjects.Score,
	stress *valueobjects.StressLevel,
	energy *valueobjects.Score,
	tags []string,
	note string,
	loggedAt time.Time,
	cfg *config.DomainConfig,
) (*CheckIn, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if mood == nil && stress == nil && energy == nil {
		return nil, pkgerrors.NewValidationError("check-in must report at least one of mood, stress, or energy")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if len(tags) > cfg.MaxTagsPerCheckIn {
		return nil, pkgerrors.NewValidationError("too many tags on check-in")
	}
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	now := time.Now()
	checkIn := &CheckIn{
		id:        valueobjects.NewCheckInID(),
		userID:    userID,
		mood:      mood,
		stress:    stress,
		energy:    energy,
		tags:      normalizeTags(tags),
		note:      note,
		dayKey:    valueobjects.NewDayKey(loggedAt),
		timeOfDay: valueobjects.TimeOfDayForHour(loggedAt.Hour()),
		loggedAt:  loggedAt,
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	checkIn.addEvent(events.NewCheckInLogged(checkIn.id, userID, checkIn.dayKey, now))

	return checkIn, nil
}

// ReconstructCheckIn rebuilds a check-in from repository data with preserved timestamps
func ReconstructCheckIn(
	id valueobjects.CheckInID,
	userID string,
	mood *valueobjects.Score,
	stress *valueobjects.StressLevel,
	energy *valueobjects.Score,
	tags []string,
	note string,
	dayKey valueobjects.DayKey,
	timeOfDay valueobjects.TimeOfDay,
	loggedAt, createdAt, updatedAt time.Time,
	deletedAt *time.Time,
	version int,
) (*CheckIn, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if id.IsEmpty() {
		return nil, pkgerrors.NewValidationError("check-in ID cannot be empty")
	}

	return &CheckIn{
		id:        id,
		userID:    userID,
		mood:      mood,
		stress:    stress,
		energy:    energy,
		tags:      normalizeTags(tags),
		note:      note,
		dayKey:    dayKey,
		timeOfDay: timeOfDay,
		loggedAt:  loggedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
		version:   version,
		events:    []events.DomainEvent{},
	}, nil
}

// Delete soft-deletes the check-in so it stops contributing to aggregates
func (c *CheckIn) Delete() error {
	if c.deletedAt != nil {
		return pkgerrors.NewConflictError("check-in is already deleted")
	}
	now := time.Now()
	c.deletedAt = &now
	c.updatedAt = now
	c.version++
	c.addEvent(events.NewCheckInDeleted(c.id, c.userID, now))
	return nil
}

// Getters

func (c *CheckIn) ID() valueobjects.CheckInID         { return c.id }
func (c *CheckIn) UserID() string                     { return c.userID }
func (c *CheckIn) Mood() *valueobjects.Score          { return c.mood }
func (c *CheckIn) Stress() *valueobjects.StressLevel  { return c.stress }
func (c *CheckIn) Energy() *valueobjects.Score        { return c.energy }
func (c *CheckIn) Tags() []string                     { return c.tags }
func (c *CheckIn) Note() string                       { return c.note }
func (c *CheckIn) DayKey() valueobjects.DayKey        { return c.dayKey }
func (c *CheckIn) TimeOfDay() valueobjects.TimeOfDay  { return c.timeOfDay }
func (c *CheckIn) LoggedAt() time.Time                { return c.loggedAt }
func (c *CheckIn) CreatedAt() time.Time               { return c.createdAt }
func (c *CheckIn) UpdatedAt() time.Time               { return c.updatedAt }
func (c *CheckIn) DeletedAt() *time.Time              { return c.deletedAt }
func (c *CheckIn) Version() int                       { return c.version }
func (c *CheckIn) IsDeleted() bool                    { return c.deletedAt != nil }

// Event management

func (c *CheckIn) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}

// GetUncommittedEvents returns events not yet published
func (c *CheckIn) GetUncommittedEvents() []events.DomainEvent {
	return c.events
}

// MarkEventsAsCommitted clears the event list after publishing
func (c *CheckIn) MarkEventsAsCommitted() {
	c.events = []events.DomainEvent{}
}

// normalizeTags lowercases, trims, and de-duplicates tags preserving order
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
