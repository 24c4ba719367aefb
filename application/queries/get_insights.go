package queries

import (
	"context"
	"errors"

	"stellium-backend/application/services"
	"stellium-backend/domain/insights"
)

// GetInsightsQuery requests the user's computed insight bundle
type GetInsightsQuery struct {
	UserID string `json:"user_id"`
}

// Validate validates the query
func (q GetInsightsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// GetInsightsHandler handles the GetInsightsQuery by running the
// pipeline; caching inside the pipeline decides whether anything is
// actually recomputed
type GetInsightsHandler struct {
	pipeline *services.InsightPipeline
}

// NewGetInsightsHandler creates a new handler instance
func NewGetInsightsHandler(pipeline *services.InsightPipeline) *GetInsightsHandler {
	return &GetInsightsHandler{pipeline: pipeline}
}

// Handle executes the query
func (h *GetInsightsHandler) Handle(ctx context.Context, query GetInsightsQuery) (*insights.InsightBundle, error) {
	return h.pipeline.Run(ctx, query.UserID)
}
