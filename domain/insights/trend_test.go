package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium-backend/domain/config"
)

func TestComputeMetricTrend_TooFewSamples(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	assert.Nil(t, ComputeMetricTrend([]float64{5, 6, 7}, "mood", cfg))
}

func TestComputeMetricTrend_MethodBoundary(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	nine := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5}
	ten := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}

	nineTrend := ComputeMetricTrend(nine, "mood", cfg)
	tenTrend := ComputeMetricTrend(ten, "mood", cfg)

	require.NotNil(t, nineTrend)
	require.NotNil(t, tenTrend)
	assert.Equal(t, MethodSplitDelta, nineTrend.Method)
	assert.Equal(t, MethodRegression, tenTrend.Method)
}

func TestComputeMetricTrend_RegressionScaling(t *testing.T) {
	// A series rising exactly 1 per day must report the total rise over
	// the window, not the per-day slope
	cfg := config.DefaultDomainConfig()
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	trend := ComputeMetricTrend(values, "mood", cfg)

	require.NotNil(t, trend)
	assert.Equal(t, MethodRegression, trend.Method)
	assert.Equal(t, TrendUp, trend.Direction)
	assert.InDelta(t, 1.0, trend.Slope, 1e-9)
	assert.InDelta(t, 11.0, trend.DisplayChange, 1e-9)
}

func TestComputeMetricTrend_SplitDeltaNotRescaled(t *testing.T) {
	// First-half mean 3, second-half mean 6: the display change is the
	// raw delta +3, never delta x (n-1)
	cfg := config.DefaultDomainConfig()
	values := []float64{3, 3, 3, 6, 6, 6}

	trend := ComputeMetricTrend(values, "mood", cfg)

	require.NotNil(t, trend)
	assert.Equal(t, MethodSplitDelta, trend.Method)
	assert.Equal(t, TrendUp, trend.Direction)
	assert.InDelta(t, 3.0, trend.DisplayChange, 1e-9)
}

func TestComputeMetricTrend_SplitDeltaDirections(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	tests := []struct {
		name      string
		values    []float64
		direction TrendDirection
	}{
		{"falling", []float64{7, 7, 7, 5, 5, 5}, TrendDown},
		{"stable within threshold", []float64{5, 5, 5, 5.4, 5.4, 5.4}, TrendStable},
		{"boundary is inclusive", []float64{5, 5, 5, 5.6, 5.6, 5.6}, TrendUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ComputeMetricTrend(tt.values, "mood", cfg)
			require.NotNil(t, trend)
			assert.Equal(t, tt.direction, trend.Direction)
		})
	}
}

func TestComputeMetricTrend_RegressionDirections(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	flat := make([]float64, 12)
	for i := range flat {
		flat[i] = 6
	}
	trend := ComputeMetricTrend(flat, "mood", cfg)
	require.NotNil(t, trend)
	assert.Equal(t, TrendStable, trend.Direction)

	falling := make([]float64, 12)
	for i := range falling {
		falling[i] = 8 - 0.2*float64(i)
	}
	trend = ComputeMetricTrend(falling, "mood", cfg)
	require.NotNil(t, trend)
	assert.Equal(t, TrendDown, trend.Direction)
}

func TestComputeVolatility_ScoreThresholds(t *testing.T) {
	cfg := config.DefaultDomainConfig()

	steady := []float64{5, 5.2, 4.8, 5.1, 5, 4.9}
	swinging := []float64{2, 8, 1, 9, 2, 8}

	low := ComputeVolatility(steady, "mood", KindScore, cfg)
	high := ComputeVolatility(swinging, "mood", KindScore, cfg)

	require.NotNil(t, low)
	require.NotNil(t, high)
	assert.Equal(t, VolatilityLow, low.Level)
	assert.Equal(t, VolatilityHigh, high.Level)
}

func TestComputeVolatility_SentimentUsesItsOwnScale(t *testing.T) {
	// A 0.4 stddev is low on the 0-10 scale but moderate for sentiment
	cfg := config.DefaultDomainConfig()
	values := []float64{0.4, -0.4, 0.4, -0.4, 0.4, -0.4}

	asScore := ComputeVolatility(values, "mood", KindScore, cfg)
	asSentiment := ComputeVolatility(values, "sentiment", KindSentiment, cfg)

	require.NotNil(t, asScore)
	require.NotNil(t, asSentiment)
	assert.Equal(t, VolatilityLow, asScore.Level)
	assert.Equal(t, VolatilityModerate, asSentiment.Level)
}

func TestComputeVolatility_TooFewSamples(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	assert.Nil(t, ComputeVolatility([]float64{5, 6}, "mood", KindScore, cfg))
}
