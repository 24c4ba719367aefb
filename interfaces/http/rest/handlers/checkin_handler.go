package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stellium-backend/application/commands"
	"stellium-backend/application/commands/bus"
	"stellium-backend/application/queries"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/domain/core/entities"
	"stellium-backend/pkg/auth"
	"stellium-backend/pkg/common"
	apperrors "stellium-backend/pkg/errors"
	"stellium-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// CheckInHandler handles check-in HTTP requests
type CheckInHandler struct {
	logCheckIn *commands.LogCheckInHandler
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(
	logCheckIn *commands.LogCheckInHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *CheckInHandler {
	return &CheckInHandler{
		logCheckIn: logCheckIn,
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     apperrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// LogCheckInRequest represents the request body for logging a check-in
type LogCheckInRequest struct {
	Mood     *int      `json:"mood,omitempty" validate:"omitempty,min=1,max=10"`
	Stress   *string   `json:"stress,omitempty" validate:"omitempty,oneof=low medium high"`
	Energy   *int      `json:"energy,omitempty" validate:"omitempty,min=1,max=10"`
	Tags     []string  `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	Note     string    `json:"note,omitempty" validate:"omitempty,max=500"`
	LoggedAt time.Time `json:"logged_at,omitempty"`
}

// LogCheckIn handles POST /checkins
func (h *CheckInHandler) LogCheckIn(w http.ResponseWriter, r *http.Request) {
	var req LogCheckInRequest
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

	loggedAt := req.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now().UTC()
	}

	cmd := commands.LogCheckInCommand{
		UserID:   userCtx.UserID,
		Mood:     req.Mood,
		Stress:   req.Stress,
		Energy:   req.Energy,
		Tags:     req.Tags,
		Note:     req.Note,
		LoggedAt: loggedAt,
	}

	checkIn, err := h.logCheckIn.Handle(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, checkInToView(checkIn))
}

// ListCheckIns handles GET /checkins
func (h *CheckInHandler) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			respondError(w, h.logger, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	query := queries.ListCheckInsQuery{
		UserID:    userCtx.UserID,
		Limit:     limit,
		NextToken: r.URL.Query().Get("next_token"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	page, ok := result.(*queries.CheckInListResult)
	if !ok {
		respondError(w, h.logger, http.StatusInternalServerError, "Unexpected query result")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, page)
}

// DeleteCheckIn handles DELETE /checkins/{checkInID}
func (h *CheckInHandler) DeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	checkInID := chi.URLParam(r, "checkInID")
	if checkInID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Check-in ID is required")
		return
	}

	cmd := commands.DeleteCheckInCommand{
		UserID:    userCtx.UserID,
		CheckInID: checkInID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Check-in deleted successfully",
	})
}

func checkInToView(checkIn *entities.CheckIn) queries.CheckInView {
	view := queries.CheckInView{
		ID:        checkIn.ID().String(),
		Tags:      checkIn.Tags(),
		Note:      checkIn.Note(),
		DayKey:    checkIn.DayKey().String(),
		TimeOfDay: checkIn.TimeOfDay().String(),
		LoggedAt:  checkIn.LoggedAt(),
	}
	if mood := checkIn.Mood(); mood != nil {
		v := mood.Int()
		view.Mood = &v
	}
	if stress := checkIn.Stress(); stress != nil {
		v := stress.String()
		view.Stress = &v
	}
	if energy := checkIn.Energy(); energy != nil {
		v := energy.Int()
		view.Energy = &v
	}
	return view
}
