package insights

import (
	"sort"

	"go.uber.org/zap"

	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
)

// DailyAggregate is one local calendar day summarized across every
// qualifying record. It is derived, never persisted: the pipeline
// rebuilds the full slice on every cache miss.
type DailyAggregate struct {
	Day              valueobjects.DayKey
	MoodAvg          *float64
	StressAvg        *float64
	EnergyAvg        *float64
	JournalCount     int
	JournalWordCount int
	KeywordsUnion    []string
	TagsUnion        []string
	EmotionCounts    *Tally
	TimeOfDayLabels  []string
	DayOfWeek        int
	SentimentAvg     *float64
}

// dayAccumulator collects raw values for one day before averaging
type dayAccumulator struct {
	day        valueobjects.DayKey
	moods      []float64
	stresses   []float64
	energies   []float64
	sentiments []float64
	keywords   map[string]bool
	tags       map[string]bool
	emotions   *Tally
	timeLabels []string

	journalCount     int
	journalWordCount int
}

// Aggregate groups check-ins and journal entries by local calendar day.
// It is a pure function of its inputs: identical inputs always produce
// a bit-identical result. Soft-deleted records are ignored; malformed
// records are skipped with a warning, never aborting the whole run.
// Days with zero qualifying records are omitted, not zero-filled.
func Aggregate(checkIns []*entities.CheckIn, entries []*entities.JournalEntry, logger *zap.Logger) []DailyAggregate {
	if logger == nil {
		logger = zap.NewNop()
	}

	days := make(map[string]*dayAccumulator)

	acc := func(day valueobjects.DayKey) *dayAccumulator {
		key := day.String()
		a, ok := days[key]
		if !ok {
			a = &dayAccumulator{
				day:      day,
				keywords: make(map[string]bool),
				tags:     make(map[string]bool),
				emotions: NewTally(),
			}
			days[key] = a
		}
		return a
	}

	for _, c := range checkIns {
		if c == nil || c.IsDeleted() {
			continue
		}
		if c.DayKey().IsZero() {
			logger.Warn("skipping check-in with invalid day key",
				zap.String("check_in_id", c.ID().String()))
			continue
		}
		a := acc(c.DayKey())
		if m := c.Mood(); m != nil {
			a.moods = append(a.moods, m.Float())
		}
		if s := c.Stress(); s != nil {
			a.stresses = append(a.stresses, s.Score())
		}
		if e := c.Energy(); e != nil {
			a.energies = append(a.energies, e.Float())
		}
		for _, tag := range c.Tags() {
			a.tags[tag] = true
		}
		if label := c.TimeOfDay().String(); label != "" {
			a.timeLabels = append(a.timeLabels, label)
		}
	}

	for _, e := range entries {
		if e == nil || e.IsDeleted() {
			continue
		}
		if e.DayKey().IsZero() {
			logger.Warn("skipping journal entry with invalid day key",
				zap.String("entry_id", e.ID().String()))
			continue
		}
		a := acc(e.DayKey())
		a.journalCount++
		a.journalWordCount += e.WordCount()
		if enr := e.Enrichment(); enr != nil {
			for _, kw := range enr.Keywords {
				a.keywords[kw] = true
			}
			for cat, count := range enr.EmotionCounts {
				a.emotions.Add(cat, count)
			}
			if enr.Sentiment != nil {
				a.sentiments = append(a.sentiments, *enr.Sentiment)
			}
		}
	}

	aggregates := make([]DailyAggregate, 0, len(days))
	for _, a := range days {
		weekday, err := a.day.Weekday()
		if err != nil {
			logger.Warn("skipping day with unparseable key",
				zap.String("day", a.day.String()), zap.Error(err))
			continue
		}

		agg := DailyAggregate{
			Day:              a.day,
			MoodAvg:          meanOrNil(a.moods),
			StressAvg:        meanOrNil(a.stresses),
			EnergyAvg:        meanOrNil(a.energies),
			SentimentAvg:     meanOrNil(a.sentiments),
			JournalCount:     a.journalCount,
			JournalWordCount: a.journalWordCount,
			KeywordsUnion:    sortedSet(a.keywords),
			TagsUnion:        sortedSet(a.tags),
			EmotionCounts:    a.emotions,
			TimeOfDayLabels:  sortedCopy(a.timeLabels),
			DayOfWeek:        int(weekday),
		}
		aggregates = append(aggregates, agg)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].Day.Before(aggregates[j].Day)
	})

	return aggregates
}

func meanOrNil(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := Mean(xs)
	return &m
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCopy(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	sort.Strings(out)
	return out
}
