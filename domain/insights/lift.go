package insights

import (
	"math"
	"sort"

	"stellium-backend/domain/config"
)

// SignalLift is the presence-rate difference of one signal between the
// best-day and hard-day cohorts
type SignalLift struct {
	Signal   string  `json:"signal"`
	Lift     float64 `json:"lift"`
	BestRate float64 `json:"best_rate"`
	HardRate float64 `json:"hard_rate"`
	Days     int     `json:"days"`
}

// LiftResult holds the cohort-lift analysis. HasData is false when the
// window is too small to split cohorts honestly; callers must not read
// the other fields in that case.
type LiftResult struct {
	HasData  bool         `json:"has_data"`
	BestDays int          `json:"best_days"`
	HardDays int          `json:"hard_days"`
	Restores []SignalLift `json:"restores,omitempty"`
	Drains   []SignalLift `json:"drains,omitempty"`
	Emotions []SignalLift `json:"emotions,omitempty"`
}

// ComputeLift splits days into best and hard cohorts and measures which
// keywords, tags, and emotions separate them.
//
// best = top 20% of days by mood; hard = top 20% by stress UNION bottom
// 20% by mood. The cohorts can overlap on turbulent days (high mood and
// high stress at once); the overlap is intentional, the cohorts answer
// different questions.
func ComputeLift(aggs []DailyAggregate, cfg *config.DomainConfig) *LiftResult {
	if len(aggs) < cfg.LiftMinAggregates {
		return &LiftResult{HasData: false}
	}

	best, hard := splitCohorts(aggs, cfg.CohortFraction)
	if len(best) < cfg.LiftMinCohortDays || len(hard) < cfg.LiftMinCohortDays {
		return &LiftResult{HasData: false}
	}

	result := &LiftResult{
		HasData:  true,
		BestDays: len(best),
		HardDays: len(hard),
	}

	keywordLifts := signalLifts(aggs, best, hard, dayKeywordsAndTags, func(lift SignalLift) bool {
		return lift.Days >= cfg.KeywordMinSignalDays && math.Abs(lift.Lift) >= cfg.KeywordMinAbsLift
	})
	result.Restores, result.Drains = topAndBottom(keywordLifts, cfg.KeywordTopN)

	result.Emotions = signalLifts(aggs, best, hard, emotionPresence(cfg.EmotionPresenceMin), func(lift SignalLift) bool {
		return math.Abs(lift.Lift) >= cfg.EmotionMinAbsLift
	})

	return result
}

// splitCohorts returns the best and hard day subsets as aggregate
// index sets
func splitCohorts(aggs []DailyAggregate, fraction float64) (best, hard map[int]bool) {
	moodDays := make([]int, 0, len(aggs))
	stressDays := make([]int, 0, len(aggs))
	for i := range aggs {
		if aggs[i].MoodAvg != nil {
			moodDays = append(moodDays, i)
		}
		if aggs[i].StressAvg != nil {
			stressDays = append(stressDays, i)
		}
	}

	byMoodDesc := make([]int, len(moodDays))
	copy(byMoodDesc, moodDays)
	sort.SliceStable(byMoodDesc, func(a, b int) bool {
		return *aggs[byMoodDesc[a]].MoodAvg > *aggs[byMoodDesc[b]].MoodAvg
	})

	byStressDesc := make([]int, len(stressDays))
	copy(byStressDesc, stressDays)
	sort.SliceStable(byStressDesc, func(a, b int) bool {
		return *aggs[byStressDesc[a]].StressAvg > *aggs[byStressDesc[b]].StressAvg
	})

	moodCohort := cohortSize(len(moodDays), fraction)
	stressCohort := cohortSize(len(stressDays), fraction)

	best = make(map[int]bool, moodCohort)
	for _, i := range byMoodDesc[:moodCohort] {
		best[i] = true
	}

	hard = make(map[int]bool, stressCohort+moodCohort)
	for _, i := range byStressDesc[:stressCohort] {
		hard[i] = true
	}
	// bottom of the mood ranking joins the hard cohort
	for _, i := range byMoodDesc[len(byMoodDesc)-moodCohort:] {
		hard[i] = true
	}

	return best, hard
}

func cohortSize(n int, fraction float64) int {
	if n == 0 {
		return 0
	}
	size := int(math.Ceil(fraction * float64(n)))
	if size < 1 {
		size = 1
	}
	if size > n {
		size = n
	}
	return size
}

// presenceFunc reports which signals are present on a given day
type presenceFunc func(agg *DailyAggregate) []string

// dayKeywordsAndTags treats journal keywords and check-in tags as one
// signal space
func dayKeywordsAndTags(agg *DailyAggregate) []string {
	if len(agg.TagsUnion) == 0 {
		return agg.KeywordsUnion
	}
	signals := make([]string, 0, len(agg.KeywordsUnion)+len(agg.TagsUnion))
	seen := make(map[string]bool, len(agg.KeywordsUnion))
	for _, kw := range agg.KeywordsUnion {
		signals = append(signals, kw)
		seen[kw] = true
	}
	for _, tag := range agg.TagsUnion {
		if !seen[tag] {
			signals = append(signals, tag)
		}
	}
	return signals
}

// emotionPresence counts an emotion as present only when it occurred at
// least minCount times that day, filtering out one-off mentions
func emotionPresence(minCount int) presenceFunc {
	return func(agg *DailyAggregate) []string {
		if agg.EmotionCounts == nil {
			return nil
		}
		var present []string
		for _, cat := range agg.EmotionCounts.Keys() {
			if agg.EmotionCounts.Get(cat) >= minCount {
				present = append(present, cat)
			}
		}
		return present
	}
}

// signalLifts computes per-signal cohort lift and keeps those passing
// the filter, sorted by lift descending (signal name as tie-break)
func signalLifts(aggs []DailyAggregate, best, hard map[int]bool, presence presenceFunc, keep func(SignalLift) bool) []SignalLift {
	totalDays := make(map[string]int)
	bestDays := make(map[string]int)
	hardDays := make(map[string]int)

	for i := range aggs {
		for _, signal := range presence(&aggs[i]) {
			totalDays[signal]++
			if best[i] {
				bestDays[signal]++
			}
			if hard[i] {
				hardDays[signal]++
			}
		}
	}

	signals := make([]string, 0, len(totalDays))
	for signal := range totalDays {
		signals = append(signals, signal)
	}
	sort.Strings(signals)

	lifts := make([]SignalLift, 0, len(signals))
	for _, signal := range signals {
		bestRate := float64(bestDays[signal]) / float64(len(best))
		hardRate := float64(hardDays[signal]) / float64(len(hard))
		lift := SignalLift{
			Signal:   signal,
			Lift:     bestRate - hardRate,
			BestRate: bestRate,
			HardRate: hardRate,
			Days:     totalDays[signal],
		}
		if keep(lift) {
			lifts = append(lifts, lift)
		}
	}

	sort.SliceStable(lifts, func(a, b int) bool {
		return lifts[a].Lift > lifts[b].Lift
	})
	return lifts
}

// topAndBottom picks the strongest positive lifts as restores and the
// strongest negative lifts as drains, most negative first
func topAndBottom(lifts []SignalLift, n int) (restores, drains []SignalLift) {
	for _, lift := range lifts {
		if lift.Lift > 0 && len(restores) < n {
			restores = append(restores, lift)
		}
	}
	for i := len(lifts) - 1; i >= 0; i-- {
		if lifts[i].Lift < 0 && len(drains) < n {
			drains = append(drains, lifts[i])
		}
	}
	return restores, drains
}
