package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/valueobjects"
)

// DeleteJournalEntryCommand represents the command to soft-delete an
// entry
type DeleteJournalEntryCommand struct {
	UserID  string `json:"user_id"`
	EntryID string `json:"entry_id"`
}

// Validate validates the command
func (cmd DeleteJournalEntryCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.EntryID == "" {
		return errors.New("entry ID is required")
	}
	return nil
}

// DeleteJournalEntryHandler handles the DeleteJournalEntryCommand
type DeleteJournalEntryHandler struct {
	journalRepo ports.JournalEntryRepository
	eventBus    ports.EventBus
	logger      *zap.Logger
}

// NewDeleteJournalEntryHandler creates a new handler instance
func NewDeleteJournalEntryHandler(
	journalRepo ports.JournalEntryRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteJournalEntryHandler {
	return &DeleteJournalEntryHandler{
		journalRepo: journalRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Handle executes the delete journal entry command
func (h *DeleteJournalEntryHandler) Handle(ctx context.Context, cmd DeleteJournalEntryCommand) error {
	id, err := valueobjects.ParseEntryID(cmd.EntryID)
	if err != nil {
		return err
	}

	entry, err := h.journalRepo.GetByID(ctx, cmd.UserID, id)
	if err != nil {
		return err
	}

	if err := entry.Delete(); err != nil {
		return err
	}

	if err := h.journalRepo.Save(ctx, entry); err != nil {
		return err
	}

	if err := h.eventBus.PublishBatch(ctx, entry.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish journal deletion events",
			zap.String("entry_id", cmd.EntryID),
			zap.Error(err))
	}
	entry.MarkEventsAsCommitted()

	return nil
}
