package insights

import (
	"fmt"

	"stellium-backend/domain/config"
)

// BlendInputs carries every signal the synthesizer can draw on.
// Profile may be nil; chart-dependent rules simply never fire then.
type BlendInputs struct {
	Trends         map[string]*MetricTrend
	Volatility     map[string]*VolatilityResult
	Lift           *LiftResult
	RecentEmotions *Tally
	JournalImpact  *JournalingImpact
	Profile        *ChartProfile
	SampleSize     int
	Confidence     Confidence
}

func (in *BlendInputs) trend(metric string) *MetricTrend {
	if in.Trends == nil {
		return nil
	}
	return in.Trends[metric]
}

func (in *BlendInputs) volatility(metric string) *VolatilityResult {
	if in.Volatility == nil {
		return nil
	}
	return in.Volatility[metric]
}

// blendRule pairs a guard with a card builder. Rule order IS priority
// order: the slice below is the single authoritative ranking of which
// blended insights matter most.
type blendRule struct {
	name    string
	matches func(in *BlendInputs, cfg *config.DomainConfig) bool
	build   func(in *BlendInputs, cfg *config.DomainConfig) InsightCard
}

// elementRegulation is the element-specific coping suggestion used by
// the stress rule
var elementRegulation = map[Element]string{
	ElementFire:  "burn it off with movement before trying to think it through",
	ElementEarth: "return to a familiar routine and let structure do the calming",
	ElementAir:   "talk it through or write it out until it has edges",
	ElementWater: "step away from other people's noise and let the feeling drain",
}

var moonHouseGrounding = map[int]string{
	1: "naming the feeling out loud", 2: "something comforting and tangible",
	3: "a real conversation", 4: "time at home", 5: "making something for fun",
	6: "restoring one broken routine", 7: "time with your closest person",
	8: "a private page in your journal", 9: "a long walk somewhere open",
	10: "closing one small work loop", 11: "time with your people",
	12: "genuine solitude",
}

var blendRules = []blendRule{
	{
		name: "stress-rising-regulation",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			t := in.trend("stress")
			if t == nil || t.Direction != TrendUp || in.RecentEmotions == nil {
				return false
			}
			return in.RecentEmotions.Get("fatigue")+in.RecentEmotions.Get("anxiety") >= cfg.BlendEmotionMinCount
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			t := in.trend("stress")
			dominant := "anxiety"
			if in.RecentEmotions.Get("fatigue") > in.RecentEmotions.Get("anxiety") {
				dominant = "fatigue"
			}
			sources := []string{"trend:stress", "emotions:recent"}

			body := fmt.Sprintf("Your stress has been climbing and %s keeps showing up in your recent entries.", dominant)
			cta := "Pick one stressor and shrink it by a single concrete step."
			if in.Profile != nil {
				if reg, ok := elementRegulation[in.Profile.DominantElement]; ok {
					body += fmt.Sprintf(" For a %s-dominant chart, the shortest route back to baseline is usually to %s.", in.Profile.DominantElement, reg)
					sources = append(sources, fmt.Sprintf("chart:element:%s", in.Profile.DominantElement))
				}
			}

			return InsightCard{
				Title:        "Stress is building",
				Body:         body,
				StatLine:     fmt.Sprintf("stress trend %s (%+.1f over %d days), recent %s count %d", t.Direction, t.DisplayChange, t.SampleSize, dominant, in.RecentEmotions.Get(dominant)),
				CallToAction: cta,
				Confidence:   t.Confidence,
				Sources:      sources,
			}
		},
	},
	{
		name: "mood-up-restores",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			t := in.trend("mood")
			return t != nil && t.Direction == TrendUp && in.Lift != nil && in.Lift.HasData && len(in.Lift.Restores) > 0
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			t := in.trend("mood")
			top := in.Lift.Restores[0]
			return InsightCard{
				Title:        "Whatever you're doing, it's working",
				Body:         fmt.Sprintf("Your mood has been rising, and %q shows up far more on your best days than your hard ones. That looks like a lever worth keeping.", top.Signal),
				StatLine:     fmt.Sprintf("mood %+.1f over %d days; %q on %.0f%% of best days vs %.0f%% of hard days", t.DisplayChange, t.SampleSize, top.Signal, top.BestRate*100, top.HardRate*100),
				CallToAction: fmt.Sprintf("Protect the time you spend on %s this week.", top.Signal),
				Confidence:   t.Confidence,
				Sources:      []string{"trend:mood", "lift:restores"},
			}
		},
	},
	{
		name: "mood-down-drains",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			t := in.trend("mood")
			return t != nil && t.Direction == TrendDown && in.Lift != nil && in.Lift.HasData && len(in.Lift.Drains) > 0
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			t := in.trend("mood")
			top := in.Lift.Drains[0]
			return InsightCard{
				Title:        "Something is pulling your mood down",
				Body:         fmt.Sprintf("Your mood has been slipping, and %q appears mostly on your harder days. It may be a cause, a consequence, or both, but it is worth a look.", top.Signal),
				StatLine:     fmt.Sprintf("mood %+.1f over %d days; %q on %.0f%% of hard days vs %.0f%% of best days", t.DisplayChange, t.SampleSize, top.Signal, top.HardRate*100, top.BestRate*100),
				CallToAction: fmt.Sprintf("Next time %s comes up, jot one line about how it felt.", top.Signal),
				Confidence:   t.Confidence,
				Sources:      []string{"trend:mood", "lift:drains"},
			}
		},
	},
	{
		name: "energy-down-journaling",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			t := in.trend("energy")
			return t != nil && t.Direction == TrendDown && in.JournalImpact != nil && in.JournalImpact.MoodDelta > 0
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			t := in.trend("energy")
			ji := in.JournalImpact
			return InsightCard{
				Title:        "Low energy, but journaling helps",
				Body:         "Your energy has been fading, and the days you journal still land noticeably better than the days you don't. Writing seems to be doing real work for you right now.",
				StatLine:     fmt.Sprintf("energy %+.1f over %d days; journaled days %.1f vs %.1f mood", t.DisplayChange, t.SampleSize, ji.JournalDayMood, ji.NonJournalDayMood),
				CallToAction: "On the flattest days, aim for three sentences, not a full page.",
				Confidence:   minConfidence(t.Confidence, ji.Confidence),
				Sources:      []string{"trend:energy", "journaling:impact"},
			}
		},
	},
	{
		name: "mood-volatility-grounding",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			v := in.volatility("mood")
			return v != nil && v.Level == VolatilityHigh && in.Profile != nil
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			v := in.volatility("mood")
			grounding := moonHouseGrounding[in.Profile.MoonHouse]
			if grounding == "" {
				grounding = "whatever has steadied you before"
			}
			return InsightCard{
				Title: "Your mood is swinging wide",
				Body: fmt.Sprintf("Your mood has been moving in big swings lately. With your Moon in the %s house, the fastest way back to center is usually %s.",
					ordinal(in.Profile.MoonHouse), grounding),
				StatLine:     fmt.Sprintf("mood stddev %.1f across %d days", v.StdDev, v.SampleSize),
				CallToAction: "When the next swing hits, try your grounding move before analyzing the swing.",
				Confidence:   ConfidenceForSamples(v.SampleSize, cfg),
				Sources:      []string{"volatility:mood", fmt.Sprintf("chart:moon_house:%d", in.Profile.MoonHouse)},
			}
		},
	},
	{
		name: "sentiment-up-consistency",
		matches: func(in *BlendInputs, cfg *config.DomainConfig) bool {
			t := in.trend("sentiment")
			return t != nil && t.Direction == TrendUp && in.JournalImpact != nil && in.JournalImpact.ConsistentWeeks >= cfg.ConsistencyMinWeeks
		},
		build: func(in *BlendInputs, cfg *config.DomainConfig) InsightCard {
			t := in.trend("sentiment")
			ji := in.JournalImpact
			return InsightCard{
				Title:        "Your writing is getting brighter",
				Body:         fmt.Sprintf("You've kept a steady journaling rhythm for %d weeks, and the tone of your entries has been lifting alongside it.", ji.ConsistentWeeks),
				StatLine:     fmt.Sprintf("sentiment %+.2f over %d journaled days; %d of %d weeks consistent", t.DisplayChange, t.SampleSize, ji.ConsistentWeeks, ji.TotalWeeks),
				CallToAction: "Keep the streak alive; rhythm is doing more than any single entry.",
				Confidence:   minConfidence(t.Confidence, ji.Confidence),
				Sources:      []string{"trend:sentiment", "journaling:consistency"},
			}
		},
	},
}

// SynthesizeBlended evaluates every rule in priority order and emits a
// card for each match. When nothing matches but there is data, a single
// fallback card keeps the section from rendering empty.
func SynthesizeBlended(in *BlendInputs, cfg *config.DomainConfig) []InsightCard {
	var cards []InsightCard
	for _, rule := range blendRules {
		if rule.matches(in, cfg) {
			cards = append(cards, rule.build(in, cfg))
		}
	}

	if len(cards) == 0 && in.SampleSize > 0 {
		cards = append(cards, InsightCard{
			Title:        "Steady as she goes",
			Body:         "Nothing in your recent window stands out as sharply rising, falling, or swinging. Steady stretches are where good habits quietly compound.",
			StatLine:     fmt.Sprintf("%d days in window", in.SampleSize),
			CallToAction: "Keep checking in; patterns need data to show themselves.",
			Confidence:   in.Confidence,
			Sources:      []string{"baseline:steady"},
		})
	}

	return cards
}

func minConfidence(a, b Confidence) Confidence {
	rank := map[Confidence]int{ConfidenceLow: 0, ConfidenceMedium: 1, ConfidenceHigh: 2}
	if rank[a] <= rank[b] {
		return a
	}
	return b
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
