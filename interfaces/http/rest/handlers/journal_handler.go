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

// JournalHandler handles journal entry HTTP requests
type JournalHandler struct {
	writeEntry *commands.WriteJournalEntryHandler
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(
	writeEntry *commands.WriteJournalEntryHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *JournalHandler {
	return &JournalHandler{
		writeEntry: writeEntry,
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     apperrors.NewErrorHandler(logger, false),
		logger:     logger,
	}
}

// WriteEntryRequest represents the request body for writing an entry
type WriteEntryRequest struct {
	Text      string    `json:"text" validate:"required,max=20000"`
	WrittenAt time.Time `json:"written_at,omitempty"`
}

// UpdateEntryRequest represents the request body for editing an entry
type UpdateEntryRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

// WriteEntry handles POST /journal
func (h *JournalHandler) WriteEntry(w http.ResponseWriter, r *http.Request) {
	var req WriteEntryRequest
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

	writtenAt := req.WrittenAt
	if writtenAt.IsZero() {
		writtenAt = time.Now().UTC()
	}

	cmd := commands.WriteJournalEntryCommand{
		UserID:    userCtx.UserID,
		Text:      req.Text,
		WrittenAt: writtenAt,
	}

	entry, err := h.writeEntry.Handle(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, entryToView(entry))
}

// UpdateEntry handles PUT /journal/{entryID}
func (h *JournalHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req UpdateEntryRequest
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

	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Entry ID is required")
		return
	}

	cmd := commands.UpdateJournalEntryCommand{
		UserID:  userCtx.UserID,
		EntryID: entryID,
		Text:    req.Text,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Journal entry updated successfully",
	})
}

// DeleteEntry handles DELETE /journal/{entryID}
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Entry ID is required")
		return
	}

	cmd := commands.DeleteJournalEntryCommand{
		UserID:  userCtx.UserID,
		EntryID: entryID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Journal entry deleted successfully",
	})
}

// ListEntries handles GET /journal
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
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

	query := queries.ListJournalEntriesQuery{
		UserID:    userCtx.UserID,
		Limit:     limit,
		NextToken: r.URL.Query().Get("next_token"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	page, ok := result.(*queries.JournalListResult)
	if !ok {
		respondError(w, h.logger, http.StatusInternalServerError, "Unexpected query result")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, page)
}

func entryToView(entry *entities.JournalEntry) queries.JournalEntryView {
	view := queries.JournalEntryView{
		ID:        entry.ID().String(),
		Text:      entry.Text(),
		WordCount: entry.WordCount(),
		DayKey:    entry.DayKey().String(),
		WrittenAt: entry.WrittenAt(),
	}
	if enrichment := entry.Enrichment(); enrichment != nil {
		view.Keywords = enrichment.Keywords
		view.Sentiment = enrichment.Sentiment
	}
	return view
}
