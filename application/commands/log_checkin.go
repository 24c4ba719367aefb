package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
)

// LogCheckInCommand represents the command to record a check-in
type LogCheckInCommand struct {
	UserID   string    `json:"user_id"`
	Mood     *int      `json:"mood,omitempty"`
	Stress   *string   `json:"stress,omitempty"`
	Energy   *int      `json:"energy,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Validate validates the command
func (cmd LogCheckInCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Mood == nil && cmd.Stress == nil && cmd.Energy == nil {
		return errors.New("at least one of mood, stress, or energy is required")
	}
	if len(cmd.Note) > 500 {
		return errors.New("note exceeds maximum length")
	}
	return nil
}

// LogCheckInHandler handles the LogCheckInCommand
type LogCheckInHandler struct {
	checkInRepo ports.CheckInRepository
	eventBus    ports.EventBus
	domainCfg   *config.DomainConfig
	logger      *zap.Logger
}

// NewLogCheckInHandler creates a new handler instance
func NewLogCheckInHandler(
	checkInRepo ports.CheckInRepository,
	eventBus ports.EventBus,
	domainCfg *config.DomainConfig,
	logger *zap.Logger,
) *LogCheckInHandler {
	return &LogCheckInHandler{
		checkInRepo: checkInRepo,
		eventBus:    eventBus,
		domainCfg:   domainCfg,
		logger:      logger,
	}
}

// Handle executes the log check-in command
func (h *LogCheckInHandler) Handle(ctx context.Context, cmd LogCheckInCommand) (*entities.CheckIn, error) {
	var mood, energy *valueobjects.Score
	var stress *valueobjects.StressLevel

	if cmd.Mood != nil {
		s, err := valueobjects.NewScore(*cmd.Mood)
		if err != nil {
			return nil, err
		}
		mood = &s
	}
	if cmd.Energy != nil {
		s, err := valueobjects.NewScore(*cmd.Energy)
		if err != nil {
			return nil, err
		}
		energy = &s
	}
	if cmd.Stress != nil {
		level, err := valueobjects.ParseStressLevel(*cmd.Stress)
		if err != nil {
			return nil, err
		}
		stress = &level
	}

	checkIn, err := entities.NewCheckIn(cmd.UserID, mood, stress, energy, cmd.Tags, cmd.Note, cmd.LoggedAt, h.domainCfg)
	if err != nil {
		return nil, err
	}

	if err := h.checkInRepo.Save(ctx, checkIn); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, checkIn.GetUncommittedEvents()); err != nil {
		// Events can be retried downstream; the write itself succeeded
		h.logger.Warn("failed to publish check-in events",
			zap.String("check_in_id", checkIn.ID().String()),
			zap.Error(err))
	}
	checkIn.MarkEventsAsCommitted()

	return checkIn, nil
}
