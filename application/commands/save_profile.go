package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
	pkgerrors "stellium-backend/pkg/errors"
)

// SaveProfileCommand creates or updates the user's profile, including
// the birth data the chart generator consumes
type SaveProfileCommand struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Timezone    string  `json:"timezone"`
	BirthDate   string  `json:"birth_date,omitempty"`
	BirthTime   string  `json:"birth_time,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// Validate validates the command
func (cmd SaveProfileCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// SaveProfileHandler handles the SaveProfileCommand
type SaveProfileHandler struct {
	profileRepo ports.ProfileRepository
	logger      *zap.Logger
}

// NewSaveProfileHandler creates a new handler instance
func NewSaveProfileHandler(profileRepo ports.ProfileRepository, logger *zap.Logger) *SaveProfileHandler {
	return &SaveProfileHandler{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Handle executes the save profile command
func (h *SaveProfileHandler) Handle(ctx context.Context, cmd SaveProfileCommand) (*entities.Profile, error) {
	profile, err := h.profileRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil && !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	if profile == nil {
		profile, err = entities.NewProfile(cmd.UserID, cmd.DisplayName, cmd.Timezone)
		if err != nil {
			return nil, err
		}
	} else if err := profile.UpdateDetails(cmd.DisplayName, cmd.Timezone); err != nil {
		return nil, err
	}

	if cmd.BirthDate != "" {
		birthData, err := valueobjects.NewBirthData(
			cmd.BirthDate, cmd.BirthTime,
			cmd.Latitude, cmd.Longitude,
			cmd.Timezone, cmd.Location,
		)
		if err != nil {
			return nil, err
		}
		if err := profile.SetBirthData(birthData); err != nil {
			return nil, err
		}
	}

	if err := h.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
