package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/config"
)

func TestComputeTimePatterns_SampleFloors(t *testing.T) {
	// Arrange: 5 morning check-ins qualify, 2 evening ones do not
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 5; i++ {
		agg := dayAgg(t, i, 7)
		agg.TimeOfDayLabels = []string{"morning"}
		aggs = append(aggs, agg)
	}
	for i := 5; i < 7; i++ {
		agg := dayAgg(t, i, 3)
		agg.TimeOfDayLabels = []string{"evening"}
		aggs = append(aggs, agg)
	}

	// Act
	patterns := ComputeTimePatterns(aggs, cfg)

	// Assert
	require.NotNil(t, patterns)
	require.Len(t, patterns.TimeOfDay, 1)
	assert.Equal(t, "morning", patterns.TimeOfDay[0].Bucket)
	assert.Equal(t, 5, patterns.TimeOfDay[0].Samples)
	assert.InDelta(t, 7.0, patterns.TimeOfDay[0].MoodAvg, 1e-9)

	// only one qualifying time bucket, so no comparison
	assert.Nil(t, patterns.TimeOfDayComparison)
}

func TestComputeTimePatterns_ComparisonNeedsWideGap(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	build := func(morningMood, eveningMood float64) []DailyAggregate {
		var aggs []DailyAggregate
		for i := 0; i < 5; i++ {
			agg := dayAgg(t, i, morningMood)
			agg.TimeOfDayLabels = []string{"morning"}
			aggs = append(aggs, agg)
		}
		for i := 5; i < 10; i++ {
			agg := dayAgg(t, i, eveningMood)
			agg.TimeOfDayLabels = []string{"evening"}
			aggs = append(aggs, agg)
		}
		return aggs
	}

	t.Run("narrow gap is not surfaced", func(t *testing.T) {
		patterns := ComputeTimePatterns(build(6.0, 5.5), cfg)
		require.NotNil(t, patterns)
		assert.Nil(t, patterns.TimeOfDayComparison)
	})

	t.Run("wide gap is surfaced", func(t *testing.T) {
		patterns := ComputeTimePatterns(build(7.0, 4.0), cfg)
		require.NotNil(t, patterns)
		require.NotNil(t, patterns.TimeOfDayComparison)
		assert.Equal(t, "morning", patterns.TimeOfDayComparison.Best.Bucket)
		assert.Equal(t, "evening", patterns.TimeOfDayComparison.Worst.Bucket)
		assert.InDelta(t, 3.0, patterns.TimeOfDayComparison.MoodGap, 1e-9)
	})
}

func TestComputeTimePatterns_NothingQualifies(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	aggs := []DailyAggregate{dayAgg(t, 0, 5), dayAgg(t, 1, 6)}
	assert.Nil(t, ComputeTimePatterns(aggs, cfg))
}

func TestComputeJournalingImpact_BelowCohortFloor(t *testing.T) {
	// Arrange: only 2 journaled days
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 10; i++ {
		agg := dayAgg(t, i, 5)
		if i < 2 {
			agg = withJournal(agg, 100)
		}
		aggs = append(aggs, agg)
	}

	// Act & Assert
	assert.Nil(t, ComputeJournalingImpact(aggs, cfg))
}

func TestComputeJournalingImpact_MoodDelta(t *testing.T) {
	// Arrange: journaled days run a full point above the rest
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			aggs = append(aggs, withJournal(dayAgg(t, i, 7), 150))
		} else {
			aggs = append(aggs, dayAgg(t, i, 6))
		}
	}

	// Act
	impact := ComputeJournalingImpact(aggs, cfg)

	// Assert
	require.NotNil(t, impact)
	assert.Equal(t, 7, impact.JournalDays)
	assert.Equal(t, 7, impact.NonJournalDays)
	assert.InDelta(t, 1.0, impact.MoodDelta, 1e-9)
	require.Len(t, impact.WordTiers, 1)
	assert.Equal(t, "medium", impact.WordTiers[0].Tier)
	assert.Contains(t, impact.Card.Sources, "journaling:impact")
}

func TestComputeJournalingImpact_FewJournaledDaysCapConfidence(t *testing.T) {
	// Arrange: 25 days overall would earn high confidence, but only 4
	// of them are journaled
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 25; i++ {
		agg := dayAgg(t, i, 5)
		if i < 4 {
			agg = withJournal(agg, 100)
		}
		aggs = append(aggs, agg)
	}

	// Act
	impact := ComputeJournalingImpact(aggs, cfg)

	// Assert
	require.NotNil(t, impact)
	assert.Equal(t, ConfidenceLow, impact.Confidence)
}

func TestComputeJournalingImpact_ConsistentWeeks(t *testing.T) {
	// Arrange: 21 straight days journaled on even offsets gives every
	// full week at least 3 journal days
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 21; i++ {
		agg := dayAgg(t, i, 6)
		if i%2 == 0 {
			agg = withJournal(agg, 50)
		}
		aggs = append(aggs, agg)
	}

	// Act
	impact := ComputeJournalingImpact(aggs, cfg)

	// Assert
	require.NotNil(t, impact)
	assert.GreaterOrEqual(t, impact.ConsistentWeeks, 2)
	assert.GreaterOrEqual(t, impact.TotalWeeks, impact.ConsistentWeeks)
}

func TestComputeEmotionToneShift_DayFloor(t *testing.T) {
	// Arrange: 8 emotion days, below the 10-day floor
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 8; i++ {
		aggs = append(aggs, withEmotions(dayAgg(t, i, 5), map[string]int{"anxiety": 2}))
	}

	// Act & Assert
	assert.Nil(t, ComputeEmotionToneShift(aggs, cfg))
}

func TestComputeEmotionToneShift_Lightening(t *testing.T) {
	// Arrange: early days all anxiety, late days all calm
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 6; i++ {
		aggs = append(aggs, withEmotions(dayAgg(t, i, 4), map[string]int{"anxiety": 3}))
	}
	for i := 6; i < 12; i++ {
		aggs = append(aggs, withEmotions(dayAgg(t, i, 7), map[string]int{"calm": 3}))
	}

	// Act
	shift := ComputeEmotionToneShift(aggs, cfg)

	// Assert
	require.NotNil(t, shift)
	assert.Equal(t, "lighter", shift.Direction)
	assert.InDelta(t, 1.0, shift.EarlyNegativeShare, 1e-9)
	assert.InDelta(t, 0.0, shift.LateNegativeShare, 1e-9)
	assert.Equal(t, 12, shift.Days)
}

func TestComputeEmotionToneShift_Steady(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 12; i++ {
		aggs = append(aggs, withEmotions(dayAgg(t, i, 5), map[string]int{"anxiety": 1, "calm": 1}))
	}

	shift := ComputeEmotionToneShift(aggs, cfg)

	require.NotNil(t, shift)
	assert.Equal(t, "steady", shift.Direction)
}
