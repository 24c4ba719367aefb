package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"stellium-backend/application/queries"
	querybus "stellium-backend/application/queries/bus"
	"stellium-backend/domain/insights"
	"stellium-backend/pkg/auth"
	apperrors "stellium-backend/pkg/errors"
)

// InsightsHandler handles insight HTTP requests
type InsightsHandler struct {
	queryBus *querybus.QueryBus
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		queryBus: queryBus,
		errors:   apperrors.NewErrorHandler(logger, false),
		logger:   logger,
	}
}

// GetInsights handles GET /insights
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := queries.GetInsightsQuery{UserID: userCtx.UserID}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	bundle, ok := result.(*insights.InsightBundle)
	if !ok {
		respondError(w, h.logger, http.StatusInternalServerError, "Unexpected query result")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, bundle)
}
