package config

// DomainConfig holds every statistical threshold and sample-size floor the
// insight pipeline uses. The cutoffs live here, in one place, so the same
// confidence policy is applied everywhere confidence is reported.
type DomainConfig struct {
	// Input window
	HistoryWindowDays int

	// Confidence policy: sample sizes at or above these counts earn
	// medium/high confidence. JournalLowConfidenceBelow is a deliberate
	// override: journaling-impact claims stay low-confidence below this
	// many journaled days regardless of overall sample size.
	MediumConfidenceMinSamples int
	HighConfidenceMinSamples   int
	JournalLowConfidenceBelow  int

	// Trend method selection and classification
	RegressionMinSamples int
	TrendMinSamples      int
	RegressionSlopeUp    float64
	RegressionSlopeDown  float64
	SplitDeltaUp         float64
	SplitDeltaDown       float64

	// Volatility stddev cutoffs (low below first, high above second)
	ScoreVolatilityModerate     float64
	ScoreVolatilityHigh         float64
	SentimentVolatilityModerate float64
	SentimentVolatilityHigh     float64

	// Cohort lift
	LiftMinAggregates    int
	LiftMinCohortDays    int
	CohortFraction       float64
	KeywordMinSignalDays int
	KeywordMinAbsLift    float64
	KeywordTopN          int
	EmotionPresenceMin   int
	EmotionMinAbsLift    float64

	// Bucket patterns
	TimeOfDayMinSamples int
	DayOfWeekMinSamples int
	BucketMinMoodGap    float64

	// Journaling impact
	JournalImpactMinCohortDays int
	WordCountTierShort         int
	WordCountTierLong          int
	ConsistentWeekMinDays      int
	ConsistencyMinWeeks        int

	// Emotion tone shift
	ToneShiftMinDays  int
	ToneShiftMinDelta float64

	// Blended synthesis
	RecentEmotionWindowDays int
	BlendEmotionMinCount    int

	// Record constraints
	MaxTagsPerCheckIn    int
	MaxJournalTextLength int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		HistoryWindowDays: 90,

		MediumConfidenceMinSamples: 10,
		HighConfidenceMinSamples:   21,
		JournalLowConfidenceBelow:  6,

		RegressionMinSamples: 10,
		TrendMinSamples:      4,
		RegressionSlopeUp:    0.03,
		RegressionSlopeDown:  -0.03,
		SplitDeltaUp:         0.6,
		SplitDeltaDown:       -0.6,

		ScoreVolatilityModerate:     1.2,
		ScoreVolatilityHigh:         2.2,
		SentimentVolatilityModerate: 0.3,
		SentimentVolatilityHigh:     0.6,

		LiftMinAggregates:    10,
		LiftMinCohortDays:    3,
		CohortFraction:       0.2,
		KeywordMinSignalDays: 4,
		KeywordMinAbsLift:    0.2,
		KeywordTopN:          3,
		EmotionPresenceMin:   2,
		EmotionMinAbsLift:    0.15,

		TimeOfDayMinSamples: 5,
		DayOfWeekMinSamples: 3,
		BucketMinMoodGap:    0.8,

		JournalImpactMinCohortDays: 3,
		WordCountTierShort:         80,
		WordCountTierLong:          250,
		ConsistentWeekMinDays:      3,
		ConsistencyMinWeeks:        2,

		ToneShiftMinDays:  10,
		ToneShiftMinDelta: 0.1,

		RecentEmotionWindowDays: 7,
		BlendEmotionMinCount:    3,

		MaxTagsPerCheckIn:    10,
		MaxJournalTextLength: 20000,
	}
}

// LoadDomainConfig loads domain configuration based on environment.
// The statistical cutoffs are the same everywhere; only record
// constraints loosen outside production.
func LoadDomainConfig(environment string) *DomainConfig {
	cfg := DefaultDomainConfig()

	if environment == "development" {
		cfg.MaxJournalTextLength = 100000
		cfg.MaxTagsPerCheckIn = 50
	}

	return cfg
}
