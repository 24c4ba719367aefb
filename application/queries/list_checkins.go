package queries

import (
	"context"
	"errors"
	"time"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
)

// ListCheckInsQuery pages through the user's check-ins, newest first
type ListCheckInsQuery struct {
	UserID    string `json:"user_id"`
	Limit     int    `json:"limit"`
	NextToken string `json:"next_token,omitempty"`
}

// Validate validates the query
func (q ListCheckInsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// CheckInView is the read model returned to callers
type CheckInView struct {
	ID        string    `json:"id"`
	Mood      *int      `json:"mood,omitempty"`
	Stress    *string   `json:"stress,omitempty"`
	Energy    *int      `json:"energy,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Note      string    `json:"note,omitempty"`
	DayKey    string    `json:"day_key"`
	TimeOfDay string    `json:"time_of_day"`
	LoggedAt  time.Time `json:"logged_at"`
}

// CheckInListResult is a page of check-ins
type CheckInListResult struct {
	Items     []CheckInView `json:"items"`
	NextToken string        `json:"next_token,omitempty"`
}

// ListCheckInsHandler handles the ListCheckInsQuery
type ListCheckInsHandler struct {
	checkInRepo ports.CheckInRepository
}

// NewListCheckInsHandler creates a new handler instance
func NewListCheckInsHandler(checkInRepo ports.CheckInRepository) *ListCheckInsHandler {
	return &ListCheckInsHandler{checkInRepo: checkInRepo}
}

// Handle executes the query
func (h *ListCheckInsHandler) Handle(ctx context.Context, query ListCheckInsQuery) (*CheckInListResult, error) {
	limit := query.Limit
	if limit == 0 {
		limit = 50
	}

	checkIns, nextToken, err := h.checkInRepo.List(ctx, query.UserID, limit, query.NextToken)
	if err != nil {
		return nil, err
	}

	result := &CheckInListResult{
		Items:     make([]CheckInView, 0, len(checkIns)),
		NextToken: nextToken,
	}
	for _, c := range checkIns {
		result.Items = append(result.Items, toCheckInView(c))
	}
	return result, nil
}

func toCheckInView(c *entities.CheckIn) CheckInView {
	view := CheckInView{
		ID:        c.ID().String(),
		Tags:      c.Tags(),
		Note:      c.Note(),
		DayKey:    c.DayKey().String(),
		TimeOfDay: c.TimeOfDay().String(),
		LoggedAt:  c.LoggedAt(),
	}
	if m := c.Mood(); m != nil {
		v := m.Int()
		view.Mood = &v
	}
	if s := c.Stress(); s != nil {
		v := s.String()
		view.Stress = &v
	}
	if e := c.Energy(); e != nil {
		v := e.Int()
		view.Energy = &v
	}
	return view
}
