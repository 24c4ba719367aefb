package insights

import (
	"fmt"
	"strings"
	"time"

	"stellium-backend/domain/config"
)

// BucketStat is the mood summary for one time-of-day or day-of-week
// bucket
type BucketStat struct {
	Bucket  string  `json:"bucket"`
	Samples int     `json:"samples"`
	MoodAvg float64 `json:"mood_avg"`
}

// BucketComparison surfaces the best-vs-worst bucket pair when the
// mood gap is wide enough to mean something
type BucketComparison struct {
	Best    BucketStat `json:"best"`
	Worst   BucketStat `json:"worst"`
	MoodGap float64    `json:"mood_gap"`
}

// BucketPatterns holds the time-of-day and day-of-week breakdowns
type BucketPatterns struct {
	TimeOfDay           []BucketStat      `json:"time_of_day,omitempty"`
	DayOfWeek           []BucketStat      `json:"day_of_week,omitempty"`
	TimeOfDayComparison *BucketComparison `json:"time_of_day_comparison,omitempty"`
	DayOfWeekComparison *BucketComparison `json:"day_of_week_comparison,omitempty"`
}

var timeOfDayOrder = []string{"morning", "afternoon", "evening", "night"}

// ComputeTimePatterns breaks mood down by time-of-day and day-of-week.
// Buckets below their sample floor are dropped entirely rather than
// reported with thin data. Returns nil when nothing qualifies.
func ComputeTimePatterns(aggs []DailyAggregate, cfg *config.DomainConfig) *BucketPatterns {
	type bucketAcc struct {
		samples   int
		moodSum   float64
		moodCount int
	}

	timeBuckets := make(map[string]*bucketAcc)
	dayBuckets := make(map[int]*bucketAcc)

	for i := range aggs {
		agg := &aggs[i]

		for _, label := range agg.TimeOfDayLabels {
			b, ok := timeBuckets[label]
			if !ok {
				b = &bucketAcc{}
				timeBuckets[label] = b
			}
			b.samples++
			if agg.MoodAvg != nil {
				b.moodSum += *agg.MoodAvg
				b.moodCount++
			}
		}

		b, ok := dayBuckets[agg.DayOfWeek]
		if !ok {
			b = &bucketAcc{}
			dayBuckets[agg.DayOfWeek] = b
		}
		b.samples++
		if agg.MoodAvg != nil {
			b.moodSum += *agg.MoodAvg
			b.moodCount++
		}
	}

	patterns := &BucketPatterns{}

	for _, label := range timeOfDayOrder {
		b := timeBuckets[label]
		if b == nil || b.samples < cfg.TimeOfDayMinSamples || b.moodCount == 0 {
			continue
		}
		patterns.TimeOfDay = append(patterns.TimeOfDay, BucketStat{
			Bucket:  label,
			Samples: b.samples,
			MoodAvg: b.moodSum / float64(b.moodCount),
		})
	}

	for day := 0; day < 7; day++ {
		b := dayBuckets[day]
		if b == nil || b.samples < cfg.DayOfWeekMinSamples || b.moodCount == 0 {
			continue
		}
		patterns.DayOfWeek = append(patterns.DayOfWeek, BucketStat{
			Bucket:  strings.ToLower(time.Weekday(day).String()),
			Samples: b.samples,
			MoodAvg: b.moodSum / float64(b.moodCount),
		})
	}

	patterns.TimeOfDayComparison = compareBuckets(patterns.TimeOfDay, cfg.BucketMinMoodGap)
	patterns.DayOfWeekComparison = compareBuckets(patterns.DayOfWeek, cfg.BucketMinMoodGap)

	if len(patterns.TimeOfDay) == 0 && len(patterns.DayOfWeek) == 0 {
		return nil
	}
	return patterns
}

// compareBuckets surfaces best vs worst only when the gap clears the
// floor; a narrow gap is noise, not a pattern
func compareBuckets(stats []BucketStat, minGap float64) *BucketComparison {
	if len(stats) < 2 {
		return nil
	}
	best, worst := stats[0], stats[0]
	for _, s := range stats[1:] {
		if s.MoodAvg > best.MoodAvg {
			best = s
		}
		if s.MoodAvg < worst.MoodAvg {
			worst = s
		}
	}
	gap := best.MoodAvg - worst.MoodAvg
	if gap < minGap {
		return nil
	}
	return &BucketComparison{Best: best, Worst: worst, MoodGap: gap}
}

// TierStat is the mood summary for one writing-length tier
type TierStat struct {
	Tier    string  `json:"tier"`
	Days    int     `json:"days"`
	MoodAvg float64 `json:"mood_avg"`
}

// JournalingImpact compares mood on journaled vs non-journaled days
type JournalingImpact struct {
	JournalDays       int         `json:"journal_days"`
	NonJournalDays    int         `json:"non_journal_days"`
	JournalDayMood    float64     `json:"journal_day_mood"`
	NonJournalDayMood float64     `json:"non_journal_day_mood"`
	MoodDelta         float64     `json:"mood_delta"`
	WordTiers         []TierStat  `json:"word_tiers,omitempty"`
	ConsistentWeeks   int         `json:"consistent_weeks"`
	TotalWeeks        int         `json:"total_weeks"`
	Confidence        Confidence  `json:"confidence"`
	Card              InsightCard `json:"card"`
}

// ComputeJournalingImpact measures whether journaling days feel
// different. Returns nil when either cohort is below the minimum: a
// claim built on two days is not an insight.
func ComputeJournalingImpact(aggs []DailyAggregate, cfg *config.DomainConfig) *JournalingImpact {
	var journalMoods, nonJournalMoods []float64
	tierMoods := map[string][]float64{}
	weeks := make(map[string]int)
	allWeeks := make(map[string]bool)

	for i := range aggs {
		agg := &aggs[i]

		week, err := isoWeekKey(agg.Day.String())
		if err == nil {
			allWeeks[week] = true
			if agg.JournalCount > 0 {
				weeks[week]++
			}
		}

		if agg.MoodAvg == nil {
			continue
		}
		if agg.JournalCount > 0 {
			journalMoods = append(journalMoods, *agg.MoodAvg)
			tierMoods[wordTier(agg.JournalWordCount, cfg)] = append(tierMoods[wordTier(agg.JournalWordCount, cfg)], *agg.MoodAvg)
		} else {
			nonJournalMoods = append(nonJournalMoods, *agg.MoodAvg)
		}
	}

	if len(journalMoods) < cfg.JournalImpactMinCohortDays || len(nonJournalMoods) < cfg.JournalImpactMinCohortDays {
		return nil
	}

	journalMood := Mean(journalMoods)
	nonJournalMood := Mean(nonJournalMoods)
	delta := journalMood - nonJournalMood

	impact := &JournalingImpact{
		JournalDays:       len(journalMoods),
		NonJournalDays:    len(nonJournalMoods),
		JournalDayMood:    journalMood,
		NonJournalDayMood: nonJournalMood,
		MoodDelta:         delta,
		TotalWeeks:        len(allWeeks),
	}

	for _, tier := range []string{"short", "medium", "long"} {
		moods := tierMoods[tier]
		if len(moods) < cfg.JournalImpactMinCohortDays {
			continue
		}
		impact.WordTiers = append(impact.WordTiers, TierStat{
			Tier:    tier,
			Days:    len(moods),
			MoodAvg: Mean(moods),
		})
	}

	for _, count := range weeks {
		if count >= cfg.ConsistentWeekMinDays {
			impact.ConsistentWeeks++
		}
	}

	impact.Confidence = ConfidenceForSamples(len(journalMoods)+len(nonJournalMoods), cfg)
	// few journaled days cap the claim at low confidence no matter how
	// long the overall window is
	if len(journalMoods) < cfg.JournalLowConfidenceBelow {
		impact.Confidence = ConfidenceLow
	}

	impact.Card = buildJournalingCard(impact)
	return impact
}

func wordTier(wordCount int, cfg *config.DomainConfig) string {
	switch {
	case wordCount < cfg.WordCountTierShort:
		return "short"
	case wordCount <= cfg.WordCountTierLong:
		return "medium"
	default:
		return "long"
	}
}

func isoWeekKey(dayKey string) (string, error) {
	t, err := time.Parse("2006-01-02", dayKey)
	if err != nil {
		return "", err
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), nil
}

func buildJournalingCard(impact *JournalingImpact) InsightCard {
	direction := "about the same as"
	if impact.MoodDelta >= 0.5 {
		direction = "noticeably better than"
	} else if impact.MoodDelta <= -0.5 {
		direction = "lower than"
	}

	return InsightCard{
		Title: "Journaling and your mood",
		Body: fmt.Sprintf("On days you journal, your mood averages %.1f, %s your non-journaling days at %.1f.",
			impact.JournalDayMood, direction, impact.NonJournalDayMood),
		StatLine: fmt.Sprintf("%d journaled days at %.1f vs %d non-journaled days at %.1f (delta %+.1f)",
			impact.JournalDays, impact.JournalDayMood, impact.NonJournalDays, impact.NonJournalDayMood, impact.MoodDelta),
		CallToAction: "Keep a short entry going on the days that feel heaviest.",
		Confidence:   impact.Confidence,
		Sources:      []string{"journaling:impact"},
	}
}

// Emotion tone classification. Categories outside both sets are
// treated as neutral and excluded from the share.
var negativeEmotions = map[string]bool{
	"anxiety":     true,
	"sadness":     true,
	"anger":       true,
	"fatigue":     true,
	"stress":      true,
	"fear":        true,
	"frustration": true,
	"overwhelm":   true,
	"loneliness":  true,
}

var positiveEmotions = map[string]bool{
	"joy":         true,
	"calm":        true,
	"gratitude":   true,
	"hope":        true,
	"excitement":  true,
	"love":        true,
	"contentment": true,
	"pride":       true,
}

// ToneShift compares the negative-emotion share of the early half of
// the window against the late half
type ToneShift struct {
	Direction          string     `json:"direction"`
	EarlyNegativeShare float64    `json:"early_negative_share"`
	LateNegativeShare  float64    `json:"late_negative_share"`
	Days               int        `json:"days"`
	Confidence         Confidence `json:"confidence"`
}

// ComputeEmotionToneShift reports how the emotional tone of journaling
// moved across the window. Returns nil below the day floor.
func ComputeEmotionToneShift(aggs []DailyAggregate, cfg *config.DomainConfig) *ToneShift {
	var emotionDays []DailyAggregate
	for _, agg := range aggs {
		if agg.EmotionCounts != nil && agg.EmotionCounts.Total() > 0 {
			emotionDays = append(emotionDays, agg)
		}
	}
	if len(emotionDays) < cfg.ToneShiftMinDays {
		return nil
	}

	half := len(emotionDays) / 2
	earlyShare, earlyOK := negativeShare(emotionDays[:half])
	lateShare, lateOK := negativeShare(emotionDays[half:])
	if !earlyOK || !lateOK {
		return nil
	}

	delta := lateShare - earlyShare
	direction := "steady"
	switch {
	case delta >= cfg.ToneShiftMinDelta:
		direction = "heavier"
	case delta <= -cfg.ToneShiftMinDelta:
		direction = "lighter"
	}

	return &ToneShift{
		Direction:          direction,
		EarlyNegativeShare: earlyShare,
		LateNegativeShare:  lateShare,
		Days:               len(emotionDays),
		Confidence:         ConfidenceForSamples(len(emotionDays), cfg),
	}
}

// negativeShare is the fraction of classified emotion occurrences that
// are negative; ok is false when no occurrence classifies
func negativeShare(aggs []DailyAggregate) (float64, bool) {
	var negative, total int
	for _, agg := range aggs {
		for _, cat := range agg.EmotionCounts.Keys() {
			count := agg.EmotionCounts.Get(cat)
			switch {
			case negativeEmotions[cat]:
				negative += count
				total += count
			case positiveEmotions[cat]:
				total += count
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(negative) / float64(total), true
}
