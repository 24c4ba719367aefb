package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/config"
	"stellium-backend/domain/core/entities"
)

// WriteJournalEntryCommand represents the command to save a new entry
type WriteJournalEntryCommand struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	WrittenAt time.Time `json:"written_at"`
}

// Validate validates the command
func (cmd WriteJournalEntryCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

// WriteJournalEntryHandler handles the WriteJournalEntryCommand
type WriteJournalEntryHandler struct {
	journalRepo ports.JournalEntryRepository
	enricher    ports.NlpEnricher
	eventBus    ports.EventBus
	domainCfg   *config.DomainConfig
	logger      *zap.Logger
}

// NewWriteJournalEntryHandler creates a new handler instance
func NewWriteJournalEntryHandler(
	journalRepo ports.JournalEntryRepository,
	enricher ports.NlpEnricher,
	eventBus ports.EventBus,
	domainCfg *config.DomainConfig,
	logger *zap.Logger,
) *WriteJournalEntryHandler {
	return &WriteJournalEntryHandler{
		journalRepo: journalRepo,
		enricher:    enricher,
		eventBus:    eventBus,
		domainCfg:   domainCfg,
		logger:      logger,
	}
}

// Handle executes the write journal entry command. Enrichment is
// best-effort at write time; an entry saved without it gets picked up
// by the pipeline's backfill on a later run.
func (h *WriteJournalEntryHandler) Handle(ctx context.Context, cmd WriteJournalEntryCommand) (*entities.JournalEntry, error) {
	entry, err := entities.NewJournalEntry(cmd.UserID, cmd.Text, cmd.WrittenAt, h.domainCfg)
	if err != nil {
		return nil, err
	}

	if h.enricher != nil {
		if enrichment, err := h.enricher.Enrich(ctx, entry.Text()); err != nil {
			h.logger.Warn("journal enrichment failed, saving without it",
				zap.String("entry_id", entry.ID().String()),
				zap.Error(err))
		} else if enrichment != nil {
			entry.ApplyEnrichment(*enrichment)
		}
	}

	if err := h.journalRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, entry.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish journal events",
			zap.String("entry_id", entry.ID().String()),
			zap.Error(err))
	}
	entry.MarkEventsAsCommitted()

	return entry, nil
}
