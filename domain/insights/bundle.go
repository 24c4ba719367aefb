package insights

import "time"

// Confidence is the coarse reliability label attached to every
// statistically derived insight
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// InsightCard is a single human-readable insight. Sources lists the
// signals that produced the card, e.g. "trend:stress" or
// "chart:element:fire", and is the provenance contract consumers and
// tests rely on.
type InsightCard struct {
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	StatLine     string     `json:"stat_line"`
	CallToAction string     `json:"call_to_action"`
	Confidence   Confidence `json:"confidence"`
	Sources      []string   `json:"sources"`
}

// InsightBundle is the full computed output of one pipeline run.
// It is an immutable value object: recomputation replaces the whole
// bundle, nothing mutates it in place.
type InsightBundle struct {
	Trends           []MetricTrend      `json:"trends"`
	Volatility       []VolatilityResult `json:"volatility"`
	Lift             *LiftResult        `json:"lift,omitempty"`
	TimePatterns     *BucketPatterns    `json:"time_patterns,omitempty"`
	JournalingImpact *JournalingImpact  `json:"journaling_impact,omitempty"`
	ToneShift        *ToneShift         `json:"tone_shift,omitempty"`
	ChartBaselines   []InsightCard      `json:"chart_baselines,omitempty"`
	BlendedCards     []InsightCard      `json:"blended_cards"`
	Confidence       Confidence         `json:"confidence"`
	SampleSize       int                `json:"sample_size"`
	ComputedAt       time.Time          `json:"computed_at"`
}

// Trend returns the trend for a metric, or nil if it was not computed
func (b *InsightBundle) Trend(metric string) *MetricTrend {
	for i := range b.Trends {
		if b.Trends[i].Metric == metric {
			return &b.Trends[i]
		}
	}
	return nil
}

// VolatilityFor returns the volatility result for a metric, or nil
func (b *InsightBundle) VolatilityFor(metric string) *VolatilityResult {
	for i := range b.Volatility {
		if b.Volatility[i].Metric == metric {
			return &b.Volatility[i]
		}
	}
	return nil
}
