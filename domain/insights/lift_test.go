package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/config"
)

func TestComputeLift_BelowAggregateFloor(t *testing.T) {
	// Arrange: 9 days, one short of the minimum window
	cfg := config.DefaultDomainConfig()
	var aggs []DailyAggregate
	for i := 0; i < 9; i++ {
		aggs = append(aggs, withStress(dayAgg(t, i, float64(i)), float64(9-i)))
	}

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert
	require.NotNil(t, result)
	assert.False(t, result.HasData)
	assert.Empty(t, result.Restores)
	assert.Empty(t, result.Drains)
}

// liftFixture builds a 20-day window with a clean best/hard separation:
// days 0-9 are hard (low mood, high stress), days 10-19 are best
// (high mood, low stress), with mood strictly increasing so cohort
// membership is unambiguous.
func liftFixture(t *testing.T) []DailyAggregate {
	t.Helper()
	var aggs []DailyAggregate
	for i := 0; i < 20; i++ {
		mood := 1.0 + float64(i)*0.4 // 1.0 .. 8.6
		stress := 9.0 - float64(i)*0.4
		aggs = append(aggs, withStress(dayAgg(t, i, mood), stress))
	}
	return aggs
}

func TestComputeLift_KeywordRestoresAndDrains(t *testing.T) {
	// Arrange: "walk" on the 5 best days plus one mid day, "deadline"
	// on the 5 hardest days plus one mid day
	cfg := config.DefaultDomainConfig()
	aggs := liftFixture(t)
	for i := 15; i < 20; i++ {
		aggs[i] = withKeywords(aggs[i], "walk")
	}
	aggs[10] = withKeywords(aggs[10], "walk")
	for i := 0; i < 5; i++ {
		aggs[i] = withKeywords(aggs[i], "deadline")
	}
	aggs[9] = withKeywords(aggs[9], "deadline")

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert: 20 days at a 20% fraction means 4-day cohorts; "walk"
	// covers all best days and no hard days, "deadline" the reverse
	require.True(t, result.HasData)
	assert.Equal(t, 4, result.BestDays)

	require.Len(t, result.Restores, 1)
	assert.Equal(t, "walk", result.Restores[0].Signal)
	assert.InDelta(t, 1.0, result.Restores[0].BestRate, 1e-9)
	assert.InDelta(t, 1.0, result.Restores[0].Lift, 1e-9)

	require.Len(t, result.Drains, 1)
	assert.Equal(t, "deadline", result.Drains[0].Signal)
	assert.True(t, result.Drains[0].Lift < 0)
}

func TestComputeLift_KeywordBelowDayFloorExcluded(t *testing.T) {
	// Arrange: a keyword on exactly 3 of 20 days with a huge cohort
	// lift still stays out; 3 appearance days is below the floor
	cfg := config.DefaultDomainConfig()
	aggs := liftFixture(t)
	for i := 17; i < 20; i++ {
		aggs[i] = withKeywords(aggs[i], "breakthrough")
	}

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert
	require.True(t, result.HasData)
	for _, lift := range result.Restores {
		assert.NotEqual(t, "breakthrough", lift.Signal)
	}
}

func TestComputeLift_SmallLiftFilteredOut(t *testing.T) {
	// Arrange: "coffee" on every single day has zero lift
	cfg := config.DefaultDomainConfig()
	aggs := liftFixture(t)
	for i := range aggs {
		aggs[i] = withKeywords(aggs[i], "coffee")
	}

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert
	require.True(t, result.HasData)
	assert.Empty(t, result.Restores)
	assert.Empty(t, result.Drains)
}

func TestComputeLift_EmotionPresenceNeedsTwoOccurrences(t *testing.T) {
	// Arrange: "joy" occurs twice a day on best days, but only once a
	// day on hard days, so hard days never count as joy-present
	cfg := config.DefaultDomainConfig()
	aggs := liftFixture(t)
	for i := 16; i < 20; i++ {
		aggs[i] = withEmotions(aggs[i], map[string]int{"joy": 2})
	}
	for i := 0; i < 4; i++ {
		aggs[i] = withEmotions(aggs[i], map[string]int{"joy": 1})
	}

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert
	require.True(t, result.HasData)
	require.Len(t, result.Emotions, 1)
	assert.Equal(t, "joy", result.Emotions[0].Signal)
	assert.InDelta(t, 1.0, result.Emotions[0].Lift, 1e-9)
}

func TestComputeLift_TagsCountAsSignals(t *testing.T) {
	// Arrange: a check-in tag, not a journal keyword, on the best days
	cfg := config.DefaultDomainConfig()
	aggs := liftFixture(t)
	for i := 15; i < 20; i++ {
		aggs[i].TagsUnion = []string{"gym"}
	}

	// Act
	result := ComputeLift(aggs, cfg)

	// Assert
	require.True(t, result.HasData)
	require.Len(t, result.Restores, 1)
	assert.Equal(t, "gym", result.Restores[0].Signal)
}
