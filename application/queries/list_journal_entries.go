package queries

import (
	"context"
	"errors"
	"time"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
)

// ListJournalEntriesQuery pages through the user's entries, newest
// first
type ListJournalEntriesQuery struct {
	UserID    string `json:"user_id"`
	Limit     int    `json:"limit"`
	NextToken string `json:"next_token,omitempty"`
}

// Validate validates the query
func (q ListJournalEntriesQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// JournalEntryView is the read model returned to callers
type JournalEntryView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
	Keywords  []string  `json:"keywords,omitempty"`
	Sentiment *float64  `json:"sentiment,omitempty"`
	DayKey    string    `json:"day_key"`
	WrittenAt time.Time `json:"written_at"`
}

// JournalListResult is a page of entries
type JournalListResult struct {
	Items     []JournalEntryView `json:"items"`
	NextToken string             `json:"next_token,omitempty"`
}

// ListJournalEntriesHandler handles the ListJournalEntriesQuery
type ListJournalEntriesHandler struct {
	journalRepo ports.JournalEntryRepository
}

// NewListJournalEntriesHandler creates a new handler instance
func NewListJournalEntriesHandler(journalRepo ports.JournalEntryRepository) *ListJournalEntriesHandler {
	return &ListJournalEntriesHandler{journalRepo: journalRepo}
}

// Handle executes the query
func (h *ListJournalEntriesHandler) Handle(ctx context.Context, query ListJournalEntriesQuery) (*JournalListResult, error) {
	limit := query.Limit
	if limit == 0 {
		limit = 50
	}

	entries, nextToken, err := h.journalRepo.List(ctx, query.UserID, limit, query.NextToken)
	if err != nil {
		return nil, err
	}

	result := &JournalListResult{
		Items:     make([]JournalEntryView, 0, len(entries)),
		NextToken: nextToken,
	}
	for _, e := range entries {
		result.Items = append(result.Items, toJournalEntryView(e))
	}
	return result, nil
}

func toJournalEntryView(e *entities.JournalEntry) JournalEntryView {
	view := JournalEntryView{
		ID:        e.ID().String(),
		Text:      e.Text(),
		WordCount: e.WordCount(),
		DayKey:    e.DayKey().String(),
		WrittenAt: e.WrittenAt(),
	}
	if enr := e.Enrichment(); enr != nil {
		view.Keywords = enr.Keywords
		view.Sentiment = enr.Sentiment
	}
	return view
}
