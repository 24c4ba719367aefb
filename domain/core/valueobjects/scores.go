package valueobjects

import "fmt"

// Score is a 0-10 self-reported rating used for mood and energy
type Score int

// NewScore validates that v is on the 0-10 scale
func NewScore(v int) (Score, error) {
	if v < 0 || v > 10 {
		return 0, fmt.Errorf("score must be between 0 and 10, got %d", v)
	}
	return Score(v), nil
}

// Int returns the raw rating
func (s Score) Int() int {
	return int(s)
}

// Float returns the rating as a float64 for statistics
func (s Score) Float() float64 {
	return float64(s)
}

// StressLevel is a categorical stress rating
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// ParseStressLevel validates a stress level string
func ParseStressLevel(s string) (StressLevel, error) {
	switch StressLevel(s) {
	case StressLow, StressMedium, StressHigh:
		return StressLevel(s), nil
	default:
		return "", fmt.Errorf("invalid stress level %q", s)
	}
}

// Score maps the categorical level onto the shared 0-10 scale so stress
// can flow through the same trend and volatility machinery as mood and
// energy. The anchors sit near the center of each band.
func (s StressLevel) Score() float64 {
	switch s {
	case StressLow:
		return 2
	case StressMedium:
		return 5
	case StressHigh:
		return 8
	default:
		return 5
	}
}

// String returns the level name
func (s StressLevel) String() string {
	return string(s)
}

// TimeOfDay is the coarse bucket a check-in falls into
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"   // 05:00-11:59
	TimeAfternoon TimeOfDay = "afternoon" // 12:00-16:59
	TimeEvening   TimeOfDay = "evening"   // 17:00-21:59
	TimeNight     TimeOfDay = "night"     // 22:00-04:59
)

// TimeOfDayForHour buckets a local hour (0-23)
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// ParseTimeOfDay validates a time-of-day string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(s) {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight:
		return TimeOfDay(s), nil
	default:
		return "", fmt.Errorf("invalid time of day %q", s)
	}
}

// String returns the bucket name
func (t TimeOfDay) String() string {
	return string(t)
}
