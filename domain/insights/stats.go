package insights

import (
	"math"
	"sort"

	"stellium-backend/domain/config"
)

// Mean returns the arithmetic mean, or 0 for an empty slice
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation.
// Fewer than two samples have no dispersion, so it returns 0.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Regression is an ordinary-least-squares fit of ys against x = 0..n-1
type Regression struct {
	Slope     float64
	Intercept float64
}

// LinearRegression fits ys by OLS with the sample index as x.
// Slope is therefore per-step (per-day when ys is a daily series).
func LinearRegression(ys []float64) Regression {
	n := len(ys)
	if n < 2 {
		return Regression{Slope: 0, Intercept: Mean(ys)}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return Regression{Slope: 0, Intercept: Mean(ys)}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	return Regression{Slope: slope, Intercept: intercept}
}

// ConfidenceForSamples classifies a sample size against the central
// confidence policy. Every confidence label in the bundle comes from
// this one function.
func ConfidenceForSamples(n int, cfg *config.DomainConfig) Confidence {
	switch {
	case n >= cfg.HighConfidenceMinSamples:
		return ConfidenceHigh
	case n >= cfg.MediumConfidenceMinSamples:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Tally is a string-keyed counter with deterministic iteration order.
// Keys() always returns sorted keys, so no output or test can end up
// depending on map iteration order.
type Tally struct {
	counts map[string]int
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments key by n
func (t *Tally) Add(key string, n int) {
	if n == 0 {
		return
	}
	t.counts[key] += n
}

// Get returns the count for key, 0 if absent
func (t *Tally) Get(key string) int {
	return t.counts[key]
}

// Keys returns all keys in sorted order
func (t *Tally) Keys() []string {
	keys := make([]string, 0, len(t.counts))
	for k := range t.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct keys
func (t *Tally) Len() int {
	return len(t.counts)
}

// Total returns the sum of all counts
func (t *Tally) Total() int {
	var total int
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Merge adds every count from other into t
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	for k, c := range other.counts {
		t.counts[k] += c
	}
}

// Max returns the key with the highest count, breaking ties by key
// order, and false if the tally is empty
func (t *Tally) Max() (string, int, bool) {
	if len(t.counts) == 0 {
		return "", 0, false
	}
	var bestKey string
	var bestCount int
	for _, k := range t.Keys() {
		if c := t.counts[k]; c > bestCount {
			bestKey, bestCount = k, c
		}
	}
	return bestKey, bestCount, true
}
