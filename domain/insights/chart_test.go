package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChart() *Chart {
	return &Chart{
		Placements: []Placement{
			{Point: "sun", Sign: "leo", House: 10},
			{Point: "moon", Sign: "cancer", House: 4},
			{Point: "mercury", Sign: "virgo", House: 11},
			{Point: "venus", Sign: "leo", House: 10},
			{Point: "mars", Sign: "aries", House: 6},
			{Point: "jupiter", Sign: "sagittarius", House: 2},
			{Point: "saturn", Sign: "capricorn", House: 3},
			{Point: "ascendant", Sign: "scorpio", House: 1},
			{Point: "chiron", Sign: "pisces", House: 5},
		},
		HouseSystem: "placidus",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDeriveChartProfile(t *testing.T) {
	// Act
	profile := DeriveChartProfile(testChart())

	// Assert: fire appears 4 times (sun, venus, mars, jupiter), the
	// most of any element
	require.NotNil(t, profile)
	assert.Equal(t, ElementFire, profile.DominantElement)
	assert.Equal(t, 4, profile.MoonHouse)
	assert.Equal(t, "capricorn", profile.SaturnSign)
	require.NotNil(t, profile.ChironSign)
	assert.Equal(t, "pisces", *profile.ChironSign)
	assert.NotEmpty(t, profile.VersionHash)
}

func TestDeriveChartProfile_NilOrEmpty(t *testing.T) {
	assert.Nil(t, DeriveChartProfile(nil))
	assert.Nil(t, DeriveChartProfile(&Chart{}))
}

func TestDeriveChartProfile_HashIgnoresUnrelatedFields(t *testing.T) {
	// Arrange: same placements, different display-only fields
	a := testChart()
	b := testChart()
	b.HouseSystem = "whole_sign"
	b.GeneratedAt = b.GeneratedAt.Add(48 * time.Hour)

	// Act
	profileA := DeriveChartProfile(a)
	profileB := DeriveChartProfile(b)

	// Assert
	assert.Equal(t, profileA.VersionHash, profileB.VersionHash)
}

func TestDeriveChartProfile_HashChangesWithDerivedFields(t *testing.T) {
	base := DeriveChartProfile(testChart())

	t.Run("moon house", func(t *testing.T) {
		chart := testChart()
		chart.Placements[1].House = 7
		assert.NotEqual(t, base.VersionHash, DeriveChartProfile(chart).VersionHash)
	})

	t.Run("saturn sign", func(t *testing.T) {
		chart := testChart()
		chart.Placements[6].Sign = "aquarius"
		assert.NotEqual(t, base.VersionHash, DeriveChartProfile(chart).VersionHash)
	})

	t.Run("chiron absent", func(t *testing.T) {
		chart := testChart()
		chart.Placements = chart.Placements[:8]
		profile := DeriveChartProfile(chart)
		assert.Nil(t, profile.ChironSign)
		assert.NotEqual(t, base.VersionHash, profile.VersionHash)
	})
}

func TestDeriveChartProfile_Deterministic(t *testing.T) {
	first := DeriveChartProfile(testChart())
	second := DeriveChartProfile(testChart())
	assert.Equal(t, first, second)
}
