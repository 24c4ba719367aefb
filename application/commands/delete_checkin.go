package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/valueobjects"
)

// DeleteCheckInCommand represents the command to soft-delete a check-in
type DeleteCheckInCommand struct {
	UserID    string `json:"user_id"`
	CheckInID string `json:"check_in_id"`
}

// Validate validates the command
func (cmd DeleteCheckInCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.CheckInID == "" {
		return errors.New("check-in ID is required")
	}
	return nil
}

// DeleteCheckInHandler handles the DeleteCheckInCommand
type DeleteCheckInHandler struct {
	checkInRepo ports.CheckInRepository
	eventBus    ports.EventBus
	logger      *zap.Logger
}

// NewDeleteCheckInHandler creates a new handler instance
func NewDeleteCheckInHandler(
	checkInRepo ports.CheckInRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteCheckInHandler {
	return &DeleteCheckInHandler{
		checkInRepo: checkInRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Handle executes the delete check-in command
func (h *DeleteCheckInHandler) Handle(ctx context.Context, cmd DeleteCheckInCommand) error {
	id, err := valueobjects.ParseCheckInID(cmd.CheckInID)
	if err != nil {
		return err
	}

	checkIn, err := h.checkInRepo.GetByID(ctx, cmd.UserID, id)
	if err != nil {
		return err
	}

	if err := checkIn.Delete(); err != nil {
		return err
	}

	if err := h.checkInRepo.Save(ctx, checkIn); err != nil {
		return err
	}

	if err := h.eventBus.PublishBatch(ctx, checkIn.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish check-in deletion events",
			zap.String("check_in_id", cmd.CheckInID),
			zap.Error(err))
	}
	checkIn.MarkEventsAsCommitted()

	return nil
}
