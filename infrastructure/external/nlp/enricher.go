// Package nlp is the HTTP adapter for the text enrichment service.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/entities"
	pkgerrors "stellium-backend/pkg/errors"
)

// Enricher implements ports.NlpEnricher against the NLP service's
// POST /v1/enrich endpoint. Callers treat failures as best-effort.
type Enricher struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEnricher creates an enricher; timeout bounds each request
func NewEnricher(baseURL string, timeout time.Duration, logger *zap.Logger) ports.NlpEnricher {
	return &Enricher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type enrichRequest struct {
	Text string `json:"text"`
}

type enrichResponse struct {
	Keywords      []string       `json:"keywords"`
	EmotionCounts map[string]int `json:"emotion_counts"`
	Sentiment     *float64       `json:"sentiment"`
}

// Enrich derives keywords, emotion counts, and sentiment from text
func (e *Enricher) Enrich(ctx context.Context, text string) (*entities.NlpEnrichment, error) {
	if e.baseURL == "" {
		return nil, pkgerrors.NewExternalError("nlp", fmt.Errorf("nlp service URL not configured"))
	}

	body, err := json.Marshal(enrichRequest{Text: text})
	if err != nil {
		return nil, pkgerrors.NewExternalError("nlp", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/enrich", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.NewExternalError("nlp", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("nlp", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewExternalError("nlp", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var parsed enrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgerrors.NewExternalError("nlp", err)
	}

	return &entities.NlpEnrichment{
		Keywords:      parsed.Keywords,
		EmotionCounts: parsed.EmotionCounts,
		Sentiment:     parsed.Sentiment,
	}, nil
}
