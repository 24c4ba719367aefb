package valueobjects

import (
	"fmt"
	"time"
)

// BirthData is the input the external chart generator consumes
type BirthData struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Location  string  `json:"location"`
}

// NewBirthData validates the date/time components
func NewBirthData(date, timeOfBirth string, lat, lon float64, timezone, location string) (BirthData, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return BirthData{}, fmt.Errorf("invalid birth date %q: %w", date, err)
	}
	if timeOfBirth != "" {
		if _, err := time.Parse("15:04", timeOfBirth); err != nil {
			return BirthData{}, fmt.Errorf("invalid birth time %q: %w", timeOfBirth, err)
		}
	}
	if lat < -90 || lat > 90 {
		return BirthData{}, fmt.Errorf("latitude out of range: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return BirthData{}, fmt.Errorf("longitude out of range: %f", lon)
	}
	return BirthData{
		Date:      date,
		Time:      timeOfBirth,
		Latitude:  lat,
		Longitude: lon,
		Timezone:  timezone,
		Location:  location,
	}, nil
}

// IsZero reports whether the birth data is unset
func (b BirthData) IsZero() bool {
	return b.Date == ""
}
