package insights

import (
	"fmt"
	"time"

	"stellium-backend/domain/config"
	"stellium-backend/domain/core/valueobjects"
)

// MakeCacheKey builds the composite cache key for one pipeline run.
// Every input able to change the computed bundle moves at least one
// component: new or edited records move the updatedAt stamps, crossing
// midnight moves the day key, and a chart change moves the version
// hash. A bundle stored under a key is therefore valid forever for
// that key.
//
// The key carries the user identity itself. The in-memory cache tier
// is shared across users, so two users with coinciding timestamps
// (trivially, two empty histories on the same day) must still get
// distinct keys.
func MakeCacheKey(userID string, lastCheckInAt, lastJournalAt time.Time, todayKey valueobjects.DayKey, chartHash string) string {
	if chartHash == "" {
		chartHash = "nochart"
	}
	return fmt.Sprintf("insights:%s:%s:%s:%s:%s",
		userID,
		lastCheckInAt.UTC().Format(time.RFC3339Nano),
		lastJournalAt.UTC().Format(time.RFC3339Nano),
		todayKey.String(),
		chartHash,
	)
}

// Compute runs every engine over the aggregates and assembles the
// bundle. Pure and synchronous: no I/O, no clock reads beyond the
// passed-in now, so two runs over identical inputs produce identical
// insight content.
//
// today is the run's calendar day in the user's own timezone, the
// same key the cache key was built from. It anchors the recent-emotion
// window so the blend never shifts by a day relative to the rest of
// the run near local midnight.
func Compute(aggs []DailyAggregate, profile *ChartProfile, cfg *config.DomainConfig, now time.Time, today valueobjects.DayKey) *InsightBundle {
	if today.IsZero() {
		today = valueobjects.NewDayKey(now)
	}
	bundle := &InsightBundle{
		SampleSize: len(aggs),
		Confidence: ConfidenceForSamples(len(aggs), cfg),
		ComputedAt: now,
	}

	trends := make(map[string]*MetricTrend)
	volatility := make(map[string]*VolatilityResult)

	type metricSeries struct {
		name   string
		values []float64
		kind   VolatilityKind
	}
	series := []metricSeries{
		{"mood", seriesOf(aggs, func(a *DailyAggregate) *float64 { return a.MoodAvg }), KindScore},
		{"stress", seriesOf(aggs, func(a *DailyAggregate) *float64 { return a.StressAvg }), KindScore},
		{"energy", seriesOf(aggs, func(a *DailyAggregate) *float64 { return a.EnergyAvg }), KindScore},
		{"sentiment", seriesOf(aggs, func(a *DailyAggregate) *float64 { return a.SentimentAvg }), KindSentiment},
	}

	for _, s := range series {
		if t := ComputeMetricTrend(s.values, s.name, cfg); t != nil {
			trends[s.name] = t
			bundle.Trends = append(bundle.Trends, *t)
		}
		if v := ComputeVolatility(s.values, s.name, s.kind, cfg); v != nil {
			volatility[s.name] = v
			bundle.Volatility = append(bundle.Volatility, *v)
		}
	}

	bundle.Lift = ComputeLift(aggs, cfg)
	bundle.TimePatterns = ComputeTimePatterns(aggs, cfg)
	bundle.JournalingImpact = ComputeJournalingImpact(aggs, cfg)
	bundle.ToneShift = ComputeEmotionToneShift(aggs, cfg)
	bundle.ChartBaselines = ChartBaselines(profile)

	bundle.BlendedCards = SynthesizeBlended(&BlendInputs{
		Trends:         trends,
		Volatility:     volatility,
		Lift:           bundle.Lift,
		RecentEmotions: recentEmotions(aggs, today, cfg.RecentEmotionWindowDays),
		JournalImpact:  bundle.JournalingImpact,
		Profile:        profile,
		SampleSize:     len(aggs),
		Confidence:     bundle.Confidence,
	}, cfg)

	return bundle
}

// seriesOf extracts the non-nil values of one metric in day order
func seriesOf(aggs []DailyAggregate, pick func(*DailyAggregate) *float64) []float64 {
	var values []float64
	for i := range aggs {
		if v := pick(&aggs[i]); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// recentEmotions sums emotion counts over the trailing window ending
// at the given calendar day
func recentEmotions(aggs []DailyAggregate, today valueobjects.DayKey, windowDays int) *Tally {
	recent := NewTally()
	cutoff, err := today.AddDays(-(windowDays - 1))
	if err != nil {
		return recent
	}
	for i := range aggs {
		if aggs[i].Day.Before(cutoff) {
			continue
		}
		recent.Merge(aggs[i].EmotionCounts)
	}
	return recent
}
