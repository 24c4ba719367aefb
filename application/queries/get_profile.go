package queries

import (
	"context"
	"errors"
	"time"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/valueobjects"
)

// GetProfileQuery requests the user's profile
type GetProfileQuery struct {
	UserID string `json:"user_id"`
}

// Validate validates the query
func (q GetProfileQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// ProfileView is the read model returned to callers
type ProfileView struct {
	UserID      string                  `json:"user_id"`
	DisplayName string                  `json:"display_name"`
	Timezone    string                  `json:"timezone"`
	BirthData   *valueobjects.BirthData `json:"birth_data,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// GetProfileHandler handles the GetProfileQuery
type GetProfileHandler struct {
	profileRepo ports.ProfileRepository
}

// NewGetProfileHandler creates a new handler instance
func NewGetProfileHandler(profileRepo ports.ProfileRepository) *GetProfileHandler {
	return &GetProfileHandler{profileRepo: profileRepo}
}

// Handle executes the query
func (h *GetProfileHandler) Handle(ctx context.Context, query GetProfileQuery) (*ProfileView, error) {
	profile, err := h.profileRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		UserID:      profile.UserID(),
		DisplayName: profile.DisplayName(),
		Timezone:    profile.Timezone(),
		BirthData:   profile.BirthData(),
		CreatedAt:   profile.CreatedAt(),
	}, nil
}
