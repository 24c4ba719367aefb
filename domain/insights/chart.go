package insights

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Element is one of the four classical elements
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Placement is one point in a generated chart
type Placement struct {
	Point  string  `json:"point"`
	Sign   string  `json:"sign"`
	House  int     `json:"house"`
	Degree float64 `json:"degree"`
}

// Chart is the opaque structure returned by the ephemeris service.
// Only Placements feed the derived profile; everything else is carried
// for display and must not influence the version hash.
type Chart struct {
	Placements  []Placement `json:"placements"`
	HouseSystem string      `json:"house_system"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ChartProfile is the small derived summary the pipeline actually
// consumes: cache keying and static baseline lookups, nothing more.
type ChartProfile struct {
	DominantElement Element `json:"dominant_element"`
	MoonHouse       int     `json:"moon_house"`
	SaturnSign      string  `json:"saturn_sign"`
	ChironSign      *string `json:"chiron_sign,omitempty"`
	VersionHash     string  `json:"version_hash"`
}

// keyPoints are the placements that vote for the dominant element
var keyPoints = map[string]bool{
	"sun":       true,
	"moon":      true,
	"mercury":   true,
	"venus":     true,
	"mars":      true,
	"jupiter":   true,
	"saturn":    true,
	"ascendant": true,
}

var signElements = map[string]Element{
	"aries":       ElementFire,
	"leo":         ElementFire,
	"sagittarius": ElementFire,
	"taurus":      ElementEarth,
	"virgo":       ElementEarth,
	"capricorn":   ElementEarth,
	"gemini":      ElementAir,
	"libra":       ElementAir,
	"aquarius":    ElementAir,
	"pisces":      ElementWater,
	"cancer":      ElementWater,
	"scorpio":     ElementWater,
}

// elementOrder breaks dominant-element ties deterministically
var elementOrder = []Element{ElementFire, ElementEarth, ElementAir, ElementWater}

// DeriveChartProfile reduces a chart to the profile the pipeline needs.
// It is a pure function of the placements; unrelated chart fields never
// affect the result or its hash. Returns nil for a chart without
// placements.
func DeriveChartProfile(chart *Chart) *ChartProfile {
	if chart == nil || len(chart.Placements) == 0 {
		return nil
	}

	elementCounts := make(map[Element]int)
	var moonHouse int
	var saturnSign string
	var chironSign *string

	for _, p := range chart.Placements {
		point := strings.ToLower(p.Point)
		sign := strings.ToLower(p.Sign)

		if keyPoints[point] {
			if el, ok := signElements[sign]; ok {
				elementCounts[el]++
			}
		}

		switch point {
		case "moon":
			moonHouse = p.House
		case "saturn":
			saturnSign = sign
		case "chiron":
			if sign != "" {
				s := sign
				chironSign = &s
			}
		}
	}

	dominant := elementOrder[0]
	best := -1
	for _, el := range elementOrder {
		if c := elementCounts[el]; c > best {
			dominant, best = el, c
		}
	}

	profile := &ChartProfile{
		DominantElement: dominant,
		MoonHouse:       moonHouse,
		SaturnSign:      saturnSign,
		ChironSign:      chironSign,
	}
	profile.VersionHash = profile.computeVersionHash()
	return profile
}

// computeVersionHash hashes exactly the derived fields. The hash must
// change if and only if a field that affects downstream output changes.
func (p *ChartProfile) computeVersionHash() string {
	chiron := ""
	if p.ChironSign != nil {
		chiron = *p.ChironSign
	}
	payload := fmt.Sprintf("%s|%d|%s|%s", p.DominantElement, p.MoonHouse, p.SaturnSign, chiron)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:16]
}
