package insights

import "stellium-backend/domain/config"

// TrendDirection classifies where a metric is heading
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendMethod names how the trend was computed
type TrendMethod string

const (
	// MethodRegression fits an OLS line; used at larger sample sizes
	MethodRegression TrendMethod = "regression"
	// MethodSplitDelta compares first-half vs second-half means; used
	// when the series is too short for a stable fit
	MethodSplitDelta TrendMethod = "split_delta"
)

// MetricTrend is the computed direction for one metric.
//
// DisplayChange semantics differ by method and must never be mixed up:
// under regression it is the total change over the window,
// slope x (n-1); under split_delta it is the raw half-to-half delta and
// is NOT rescaled. Rescaling a split delta by (n-1) would misreport the
// magnitude by an order of magnitude.
type MetricTrend struct {
	Metric        string         `json:"metric"`
	Direction     TrendDirection `json:"direction"`
	Slope         float64        `json:"slope"`
	Method        TrendMethod    `json:"method"`
	DisplayChange float64        `json:"display_change"`
	SampleSize    int            `json:"sample_size"`
	Confidence    Confidence     `json:"confidence"`
}

// ComputeMetricTrend computes the trend for an ordered daily series.
// Returns nil when the series is too short to say anything.
func ComputeMetricTrend(values []float64, metric string, cfg *config.DomainConfig) *MetricTrend {
	n := len(values)
	if n < cfg.TrendMinSamples {
		return nil
	}

	trend := &MetricTrend{
		Metric:     metric,
		SampleSize: n,
		Confidence: ConfidenceForSamples(n, cfg),
	}

	if n >= cfg.RegressionMinSamples {
		fit := LinearRegression(values)
		trend.Method = MethodRegression
		trend.Slope = fit.Slope
		trend.DisplayChange = fit.Slope * float64(n-1)
		switch {
		case fit.Slope >= cfg.RegressionSlopeUp:
			trend.Direction = TrendUp
		case fit.Slope <= cfg.RegressionSlopeDown:
			trend.Direction = TrendDown
		default:
			trend.Direction = TrendStable
		}
		return trend
	}

	firstHalf := values[:n/2]
	secondHalf := values[n/2:]
	delta := Mean(secondHalf) - Mean(firstHalf)

	trend.Method = MethodSplitDelta
	trend.DisplayChange = delta
	switch {
	case delta >= cfg.SplitDeltaUp:
		trend.Direction = TrendUp
	case delta <= cfg.SplitDeltaDown:
		trend.Direction = TrendDown
	default:
		trend.Direction = TrendStable
	}
	return trend
}

// VolatilityLevel classifies dispersion
type VolatilityLevel string

const (
	VolatilityLow      VolatilityLevel = "low"
	VolatilityModerate VolatilityLevel = "moderate"
	VolatilityHigh     VolatilityLevel = "high"
)

// VolatilityKind selects the threshold scale for a metric
type VolatilityKind int

const (
	// KindScore covers 0-10 metrics (mood, stress, energy)
	KindScore VolatilityKind = iota
	// KindSentiment covers the -1..1 sentiment scale
	KindSentiment
)

// VolatilityResult is the computed dispersion for one metric
type VolatilityResult struct {
	Metric     string          `json:"metric"`
	StdDev     float64         `json:"std_dev"`
	Level      VolatilityLevel `json:"level"`
	SampleSize int             `json:"sample_size"`
}

// ComputeVolatility classifies the population stddev of a daily series
// against the thresholds for the metric's scale. Returns nil when the
// series is too short to report.
func ComputeVolatility(values []float64, metric string, kind VolatilityKind, cfg *config.DomainConfig) *VolatilityResult {
	if len(values) < cfg.TrendMinSamples {
		return nil
	}

	moderate, high := cfg.ScoreVolatilityModerate, cfg.ScoreVolatilityHigh
	if kind == KindSentiment {
		moderate, high = cfg.SentimentVolatilityModerate, cfg.SentimentVolatilityHigh
	}

	sd := StdDev(values)
	level := VolatilityLow
	switch {
	case sd >= high:
		level = VolatilityHigh
	case sd >= moderate:
		level = VolatilityModerate
	}

	return &VolatilityResult{
		Metric:     metric,
		StdDev:     sd,
		Level:      level,
		SampleSize: len(values),
	}
}
