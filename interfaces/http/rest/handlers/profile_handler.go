package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"stellium-backend/application/commands"
	"stellium-backend/application/queries"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/domain/core/entities"
	"stellium-backend/pkg/auth"
	"stellium-backend/pkg/common"
	apperrors "stellium-backend/pkg/errors"
	"stellium-backend/pkg/utils"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	saveProfile *commands.SaveProfileHandler
	queryBus    *querybus.QueryBus
	errors      *apperrors.ErrorHandler
	logger      *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	saveProfile *commands.SaveProfileHandler,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		saveProfile: saveProfile,
		queryBus:    queryBus,
		errors:      apperrors.NewErrorHandler(logger, false),
		logger:      logger,
	}
}

// SaveProfileRequest represents the request body for saving a profile
type SaveProfileRequest struct {
	DisplayName string  `json:"display_name" validate:"required,min=1,max=100"`
	Timezone    string  `json:"timezone" validate:"required"`
	BirthDate   string  `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BirthTime   string  `json:"birth_time,omitempty" validate:"omitempty,datetime=15:04"`
	Latitude    float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude   float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Location    string  `json:"location,omitempty" validate:"omitempty,max=200"`
}

// SaveProfile handles PUT /profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.SaveProfileCommand{
		UserID:      userCtx.UserID,
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
		BirthDate:   req.BirthDate,
		BirthTime:   req.BirthTime,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Location:    req.Location,
	}

	profile, err := h.saveProfile.Handle(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, profileToView(profile))
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetProfileQuery{UserID: userCtx.UserID}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	view, ok := result.(*queries.ProfileView)
	if !ok {
		respondError(w, h.logger, http.StatusInternalServerError, "Unexpected query result")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, view)
}

func profileToView(profile *entities.Profile) queries.ProfileView {
	return queries.ProfileView{
		UserID:      profile.UserID(),
		DisplayName: profile.DisplayName(),
		Timezone:    profile.Timezone(),
		BirthData:   profile.BirthData(),
		CreatedAt:   profile.CreatedAt(),
	}
}
