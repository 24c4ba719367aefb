package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/valueobjects"
)

func TestMakeCacheKey_Sensitivity(t *testing.T) {
	lastCheckIn := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	lastJournal := time.Date(2026, 8, 19, 22, 15, 0, 0, time.UTC)
	today := mustDay(t, "2026-08-20")

	base := MakeCacheKey("user-1", lastCheckIn, lastJournal, today, "abc123")

	t.Run("identical inputs produce identical keys", func(t *testing.T) {
		assert.Equal(t, base, MakeCacheKey("user-1", lastCheckIn, lastJournal, today, "abc123"))
	})

	t.Run("different user changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, MakeCacheKey("user-2", lastCheckIn, lastJournal, today, "abc123"))
	})

	t.Run("empty histories of different users never collide", func(t *testing.T) {
		var zero time.Time
		a := MakeCacheKey("user-1", zero, zero, today, "")
		b := MakeCacheKey("user-2", zero, zero, today, "")
		assert.NotEqual(t, a, b)
	})

	t.Run("chart hash changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, MakeCacheKey("user-1", lastCheckIn, lastJournal, today, "def456"))
	})

	t.Run("new check-in changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, MakeCacheKey("user-1", lastCheckIn.Add(time.Minute), lastJournal, today, "abc123"))
	})

	t.Run("new journal entry changes the key", func(t *testing.T) {
		assert.NotEqual(t, base, MakeCacheKey("user-1", lastCheckIn, lastJournal.Add(time.Second), today, "abc123"))
	})

	t.Run("crossing midnight changes the key", func(t *testing.T) {
		tomorrow := mustDay(t, "2026-08-21")
		assert.NotEqual(t, base, MakeCacheKey("user-1", lastCheckIn, lastJournal, tomorrow, "abc123"))
	})

	t.Run("missing chart gets a stable placeholder", func(t *testing.T) {
		a := MakeCacheKey("user-1", lastCheckIn, lastJournal, today, "")
		b := MakeCacheKey("user-1", lastCheckIn, lastJournal, today, "")
		assert.Equal(t, a, b)
		assert.Contains(t, a, "nochart")
	})
}

func TestCompute_EndToEnd(t *testing.T) {
	// Arrange: 14 days with mood rising linearly 4 -> 8, 5 of the last
	// 7 days journaled, no chart data
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 14; i++ {
		mood := 4.0 + float64(i)*(4.0/13.0)
		agg := dayAgg(t, i, mood)
		if i >= 7 && i < 12 {
			agg = withJournal(agg, 120)
		}
		aggs = append(aggs, agg)
	}
	now := time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)

	// Act
	bundle := Compute(aggs, nil, cfg, now, valueobjects.NewDayKey(now))

	// Assert
	require.NotNil(t, bundle)
	assert.Equal(t, 14, bundle.SampleSize)
	assert.Equal(t, ConfidenceMedium, bundle.Confidence)

	moodTrend := bundle.Trend("mood")
	require.NotNil(t, moodTrend)
	assert.Equal(t, TrendUp, moodTrend.Direction)
	assert.Equal(t, MethodRegression, moodTrend.Method)
	assert.InDelta(t, 4.0, moodTrend.DisplayChange, 0.01)

	require.NotNil(t, bundle.JournalingImpact)
	assert.Equal(t, 5, bundle.JournalingImpact.JournalDays)
	assert.NotEmpty(t, bundle.JournalingImpact.Card.Title)

	// no chart means no baseline cards, but chart-independent sections
	// still render
	assert.Empty(t, bundle.ChartBaselines)
	assert.NotEmpty(t, bundle.BlendedCards)
}

func TestCompute_WithChartProfile(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 12; i++ {
		aggs = append(aggs, dayAgg(t, i, 6))
	}
	profile := DeriveChartProfile(testChart())
	now := time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC)

	// Act
	bundle := Compute(aggs, profile, cfg, now, valueobjects.NewDayKey(now))

	// Assert: element, moon house, saturn, and chiron cards
	require.Len(t, bundle.ChartBaselines, 4)
	for _, card := range bundle.ChartBaselines {
		assert.Equal(t, ConfidenceHigh, card.Confidence)
		assert.NotEmpty(t, card.Sources)
	}
}

func TestCompute_DeterministicContent(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 15; i++ {
		agg := withStress(dayAgg(t, i, float64(i%10)), float64((i+3)%10))
		agg = withEmotions(agg, map[string]int{"anxiety": i % 3, "calm": (i + 1) % 3})
		aggs = append(aggs, agg)
	}
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// Act
	first := Compute(aggs, nil, cfg, now, valueobjects.NewDayKey(now))
	second := Compute(aggs, nil, cfg, now, valueobjects.NewDayKey(now))

	// Assert
	assert.Equal(t, first, second)
}

func TestRecentEmotions_WindowEndsAtGivenDay(t *testing.T) {
	// one emotional day at 2026-08-09, seven-day window
	aggs := []DailyAggregate{withEmotions(dayAgg(t, 8, 5), map[string]int{"anxiety": 2})}

	t.Run("day inside the window is counted", func(t *testing.T) {
		tally := recentEmotions(aggs, mustDay(t, "2026-08-15"), 7)
		assert.Equal(t, 2, tally.Total())
	})

	t.Run("window follows the caller's day, not the server clock", func(t *testing.T) {
		// a user a day ahead of the server sees the cutoff move with
		// their own calendar
		tally := recentEmotions(aggs, mustDay(t, "2026-08-16"), 7)
		assert.Equal(t, 0, tally.Total())
	})
}

func TestCompute_EmptyWindow(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	bundle := Compute(nil, nil, cfg, now, valueobjects.NewDayKey(now))

	require.NotNil(t, bundle)
	assert.Equal(t, 0, bundle.SampleSize)
	assert.Empty(t, bundle.Trends)
	assert.Empty(t, bundle.BlendedCards)
	require.NotNil(t, bundle.Lift)
	assert.False(t, bundle.Lift.HasData)
}
