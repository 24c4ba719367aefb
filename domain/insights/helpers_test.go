package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"stellium-backend/domain/core/valueobjects"
)

// Helper function to create float64 pointer
func floatPtr(f float64) *float64 {
	return &f
}

// mustDay parses a YYYY-MM-DD key or fails the test
func mustDay(t *testing.T, s string) valueobjects.DayKey {
	t.Helper()
	day, err := valueobjects.ParseDayKey(s)
	require.NoError(t, err)
	return day
}

// dayAgg builds an aggregate for 2026-08-(offset+1) with a mood value
func dayAgg(t *testing.T, offset int, mood float64) DailyAggregate {
	t.Helper()
	day := mustDay(t, fmt.Sprintf("2026-08-%02d", offset+1))
	weekday, err := day.Weekday()
	require.NoError(t, err)
	return DailyAggregate{
		Day:           day,
		MoodAvg:       floatPtr(mood),
		EmotionCounts: NewTally(),
		DayOfWeek:     int(weekday),
	}
}

// withStress sets the stress average on an aggregate
func withStress(agg DailyAggregate, stress float64) DailyAggregate {
	agg.StressAvg = floatPtr(stress)
	return agg
}

// withKeywords sets the keyword union on an aggregate
func withKeywords(agg DailyAggregate, keywords ...string) DailyAggregate {
	agg.KeywordsUnion = keywords
	return agg
}

// withJournal marks the day as journaled with the given word count
func withJournal(agg DailyAggregate, wordCount int) DailyAggregate {
	agg.JournalCount = 1
	agg.JournalWordCount = wordCount
	return agg
}

// withEmotions sets per-category emotion counts on an aggregate
func withEmotions(agg DailyAggregate, counts map[string]int) DailyAggregate {
	tally := NewTally()
	for cat, n := range counts {
		tally.Add(cat, n)
	}
	agg.EmotionCounts = tally
	return agg
}
