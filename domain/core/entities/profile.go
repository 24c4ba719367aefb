package entities

import (
	"time"

	"stellium-backend/domain/core/valueobjects"
	pkgerrors "stellium-backend/pkg/errors"
)

// Profile is the user's static half of the insight pairing: identity
// plus the birth data the chart generator consumes. There is one per
// user and it changes rarely.
type Profile struct {
	userID      string
	displayName string
	birthData   *valueobjects.BirthData
	timezone    string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProfile creates a profile for a user
func NewProfile(userID, displayName, timezone string) (*Profile, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, pkgerrors.NewValidationError("invalid timezone: " + timezone)
	}

	now := time.Now()
	return &Profile{
		userID:      userID,
		displayName: displayName,
		timezone:    timezone,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructProfile rebuilds a profile from repository data
func ReconstructProfile(
	userID, displayName string,
	birthData *valueobjects.BirthData,
	timezone string,
	createdAt, updatedAt time.Time,
) (*Profile, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	return &Profile{
		userID:      userID,
		displayName: displayName,
		birthData:   birthData,
		timezone:    timezone,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// UpdateDetails changes the display name and timezone
func (p *Profile) UpdateDetails(displayName, timezone string) error {
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return pkgerrors.NewValidationError("invalid timezone: " + timezone)
		}
		p.timezone = timezone
	}
	if displayName != "" {
		p.displayName = displayName
	}
	p.updatedAt = time.Now()
	return nil
}

// SetBirthData attaches or replaces the birth data
func (p *Profile) SetBirthData(data valueobjects.BirthData) error {
	if data.IsZero() {
		return pkgerrors.NewValidationError("birth data cannot be empty")
	}
	p.birthData = &data
	p.updatedAt = time.Now()
	return nil
}

// Location resolves the profile's timezone, falling back to UTC
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (p *Profile) UserID() string                       { return p.userID }
func (p *Profile) DisplayName() string                  { return p.displayName }
func (p *Profile) BirthData() *valueobjects.BirthData   { return p.birthData }
func (p *Profile) Timezone() string                     { return p.timezone }
func (p *Profile) CreatedAt() time.Time                 { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time                 { return p.updatedAt }
func (p *Profile) HasBirthData() bool                   { return p.birthData != nil }
