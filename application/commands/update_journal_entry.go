package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
	"stellium-backend/domain/core/valueobjects"
)

// UpdateJournalEntryCommand represents the command to edit an entry
type UpdateJournalEntryCommand struct {
	UserID  string `json:"user_id"`
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
}

// Validate validates the command
func (cmd UpdateJournalEntryCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.EntryID == "" {
		return errors.New("entry ID is required")
	}
	if cmd.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

// UpdateJournalEntryHandler handles the UpdateJournalEntryCommand
type UpdateJournalEntryHandler struct {
	journalRepo ports.JournalEntryRepository
	enricher    ports.NlpEnricher
	eventBus    ports.EventBus
	domainCfg   *config.DomainConfig
	logger      *zap.Logger
}

// NewUpdateJournalEntryHandler creates a new handler instance
func NewUpdateJournalEntryHandler(
	journalRepo ports.JournalEntryRepository,
	enricher ports.NlpEnricher,
	eventBus ports.EventBus,
	domainCfg *config.DomainConfig,
	logger *zap.Logger,
) *UpdateJournalEntryHandler {
	return &UpdateJournalEntryHandler{
		journalRepo: journalRepo,
		enricher:    enricher,
		eventBus:    eventBus,
		domainCfg:   domainCfg,
		logger:      logger,
	}
}

// Handle executes the update journal entry command
func (h *UpdateJournalEntryHandler) Handle(ctx context.Context, cmd UpdateJournalEntryCommand) (*entities.JournalEntry, error) {
	id, err := valueobjects.ParseEntryID(cmd.EntryID)
	if err != nil {
		return nil, err
	}

	entry, err := h.journalRepo.GetByID(ctx, cmd.UserID, id)
	if err != nil {
		return nil, err
	}

	if err := entry.Edit(cmd.Text, h.domainCfg); err != nil {
		return nil, err
	}

	// editing cleared the old enrichment; try to re-derive it now
	if h.enricher != nil {
		if enrichment, err := h.enricher.Enrich(ctx, entry.Text()); err != nil {
			h.logger.Warn("journal re-enrichment failed, saving without it",
				zap.String("entry_id", cmd.EntryID),
				zap.Error(err))
		} else if enrichment != nil {
			entry.ApplyEnrichment(*enrichment)
		}
	}

	if err := h.journalRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, entry.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish journal update events",
			zap.String("entry_id", cmd.EntryID),
			zap.Error(err))
	}
	entry.MarkEventsAsCommitted()

	return entry, nil
}
