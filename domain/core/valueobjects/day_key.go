package valueobjects

import (
	"fmt"
	"time"
)

// dayKeyLayout is the canonical YYYY-MM-DD form
const dayKeyLayout = "2006-01-02"

// DayKey is a local-timezone calendar date used as the aggregation unit.
// It is always derived from a timestamp in the user's own location,
// never from a UTC conversion, so a late-night check-in in Auckland and
// an early one in Lisbon both land on the day the user actually lived.
type DayKey struct {
	value string
}

// NewDayKey derives the day key for t in t's own location
func NewDayKey(t time.Time) DayKey {
	return DayKey{value: t.Format(dayKeyLayout)}
}

// NewDayKeyIn derives the day key for t interpreted in loc
func NewDayKeyIn(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.Local
	}
	return DayKey{value: t.In(loc).Format(dayKeyLayout)}
}

// ParseDayKey validates and wraps a YYYY-MM-DD string
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(dayKeyLayout, s); err != nil {
		return DayKey{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return DayKey{value: s}, nil
}

// String returns the YYYY-MM-DD form
func (d DayKey) String() string {
	return d.value
}

// IsZero reports whether the key is unset
func (d DayKey) IsZero() bool {
	return d.value == ""
}

// Equals checks equality with another day key
func (d DayKey) Equals(other DayKey) bool {
	return d.value == other.value
}

// Before reports whether d sorts before other.
// Lexicographic order on YYYY-MM-DD is chronological order.
func (d DayKey) Before(other DayKey) bool {
	return d.value < other.value
}

// Time returns midnight of the day in the given location
func (d DayKey) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dayKeyLayout, d.value, loc)
}

// Weekday returns the day of week (Sunday = 0)
func (d DayKey) Weekday() (time.Weekday, error) {
	t, err := time.Parse(dayKeyLayout, d.value)
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}

// AddDays returns the day key n days after d
func (d DayKey) AddDays(n int) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, d.value)
	if err != nil {
		return DayKey{}, err
	}
	return DayKey{value: t.AddDate(0, 0, n).Format(dayKeyLayout)}, nil
}
