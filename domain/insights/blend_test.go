package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/config"
)

func stressUpTrend() *MetricTrend {
	return &MetricTrend{
		Metric:        "stress",
		Direction:     TrendUp,
		Method:        MethodRegression,
		Slope:         0.1,
		DisplayChange: 1.3,
		SampleSize:    14,
		Confidence:    ConfidenceMedium,
	}
}

func fireProfile() *ChartProfile {
	profile := &ChartProfile{
		DominantElement: ElementFire,
		MoonHouse:       4,
		SaturnSign:      "capricorn",
	}
	profile.VersionHash = profile.computeVersionHash()
	return profile
}

func TestSynthesizeBlended_StressRegulationRule(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	recent := NewTally()
	recent.Add("fatigue", 2)
	recent.Add("anxiety", 2)

	in := &BlendInputs{
		Trends:         map[string]*MetricTrend{"stress": stressUpTrend()},
		RecentEmotions: recent,
		Profile:        fireProfile(),
		SampleSize:     14,
		Confidence:     ConfidenceMedium,
	}

	// Act
	cards := SynthesizeBlended(in, cfg)

	// Assert
	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, "Stress is building", card.Title)
	assert.Contains(t, card.Sources, "trend:stress")
	assert.Contains(t, card.Sources, "emotions:recent")
	assert.Contains(t, card.Sources, "chart:element:fire")
	assert.Equal(t, ConfidenceMedium, card.Confidence)
}

func TestSynthesizeBlended_StressRuleWithoutChart(t *testing.T) {
	// Arrange: no profile, so the chart source must not appear
	cfg := config.DefaultDomainConfig()
	recent := NewTally()
	recent.Add("anxiety", 3)

	in := &BlendInputs{
		Trends:         map[string]*MetricTrend{"stress": stressUpTrend()},
		RecentEmotions: recent,
		SampleSize:     14,
		Confidence:     ConfidenceMedium,
	}

	// Act
	cards := SynthesizeBlended(in, cfg)

	// Assert
	require.Len(t, cards, 1)
	assert.Equal(t, []string{"trend:stress", "emotions:recent"}, cards[0].Sources)
}

func TestSynthesizeBlended_StressRuleNeedsEmotionCount(t *testing.T) {
	// Arrange: stress rising but only 2 negative-emotion mentions in
	// the recent window
	cfg := config.DefaultDomainConfig()
	recent := NewTally()
	recent.Add("fatigue", 2)

	in := &BlendInputs{
		Trends:         map[string]*MetricTrend{"stress": stressUpTrend()},
		RecentEmotions: recent,
		SampleSize:     14,
		Confidence:     ConfidenceMedium,
	}

	// Act
	cards := SynthesizeBlended(in, cfg)

	// Assert: falls through to the fallback card
	require.Len(t, cards, 1)
	assert.Equal(t, []string{"baseline:steady"}, cards[0].Sources)
}

func TestSynthesizeBlended_MoodUpWithRestores(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	in := &BlendInputs{
		Trends: map[string]*MetricTrend{
			"mood": {Metric: "mood", Direction: TrendUp, Method: MethodRegression, DisplayChange: 2.2, SampleSize: 20, Confidence: ConfidenceMedium},
		},
		Lift: &LiftResult{
			HasData:  true,
			BestDays: 4,
			HardDays: 4,
			Restores: []SignalLift{{Signal: "walk", Lift: 0.75, BestRate: 1.0, HardRate: 0.25, Days: 8}},
		},
		SampleSize: 20,
		Confidence: ConfidenceMedium,
	}

	// Act
	cards := SynthesizeBlended(in, cfg)

	// Assert
	require.Len(t, cards, 1)
	assert.Equal(t, []string{"trend:mood", "lift:restores"}, cards[0].Sources)
	assert.Contains(t, cards[0].Body, "walk")
}

func TestSynthesizeBlended_MultipleRulesEmitInPriorityOrder(t *testing.T) {
	// Arrange: stress rule and mood-volatility rule both fire
	cfg := config.DefaultDomainConfig()
	recent := NewTally()
	recent.Add("anxiety", 4)

	in := &BlendInputs{
		Trends: map[string]*MetricTrend{"stress": stressUpTrend()},
		Volatility: map[string]*VolatilityResult{
			"mood": {Metric: "mood", StdDev: 2.8, Level: VolatilityHigh, SampleSize: 14},
		},
		RecentEmotions: recent,
		Profile:        fireProfile(),
		SampleSize:     14,
		Confidence:     ConfidenceMedium,
	}

	// Act
	cards := SynthesizeBlended(in, cfg)

	// Assert: stress outranks volatility
	require.Len(t, cards, 2)
	assert.Equal(t, "Stress is building", cards[0].Title)
	assert.Contains(t, cards[1].Sources, "volatility:mood")
	assert.Contains(t, cards[1].Sources, "chart:moon_house:4")
}

func TestSynthesizeBlended_FallbackWhenNothingMatches(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	in := &BlendInputs{SampleSize: 12, Confidence: ConfidenceMedium}

	cards := SynthesizeBlended(in, cfg)

	require.Len(t, cards, 1)
	assert.Equal(t, []string{"baseline:steady"}, cards[0].Sources)
	assert.Equal(t, ConfidenceMedium, cards[0].Confidence)
}

func TestSynthesizeBlended_NoDataNoCards(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cards := SynthesizeBlended(&BlendInputs{SampleSize: 0}, cfg)
	assert.Empty(t, cards)
}
