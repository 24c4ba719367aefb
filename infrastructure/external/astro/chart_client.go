// Package astro is the HTTP adapter for the natal chart service.
package astro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/core/valueobjects"
	"stellium-backend/domain/insights"
	pkgerrors "stellium-backend/pkg/errors"
)

// ChartClient implements ports.ChartGenerator against the astro
// service's POST /v1/chart endpoint.
type ChartClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewChartClient creates a chart client; timeout bounds each request
func NewChartClient(baseURL string, timeout time.Duration, logger *zap.Logger) ports.ChartGenerator {
	return &ChartClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type chartRequest struct {
	Date      string  `json:"date"`
	Time      string  `json:"time,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

type chartResponse struct {
	Placements []struct {
		Point  string  `json:"point"`
		Sign   string  `json:"sign"`
		House  int     `json:"house"`
		Degree float64 `json:"degree"`
	} `json:"placements"`
	HouseSystem string `json:"house_system"`
}

// GenerateChart requests a natal chart for the given birth data
func (c *ChartClient) GenerateChart(ctx context.Context, birth valueobjects.BirthData) (*insights.Chart, error) {
	if c.baseURL == "" {
		return nil, pkgerrors.NewExternalError("astro", fmt.Errorf("astro service URL not configured"))
	}

	body, err := json.Marshal(chartRequest{
		Date:      birth.Date,
		Time:      birth.Time,
		Latitude:  birth.Latitude,
		Longitude: birth.Longitude,
		Timezone:  birth.Timezone,
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("astro", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chart", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.NewExternalError("astro", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("astro", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewExternalError("astro", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgerrors.NewExternalError("astro", err)
	}

	placements := make([]insights.Placement, 0, len(parsed.Placements))
	for _, p := range parsed.Placements {
		placements = append(placements, insights.Placement{
			Point:  p.Point,
			Sign:   p.Sign,
			House:  p.House,
			Degree: p.Degree,
		})
	}

	c.logger.Debug("generated natal chart",
		zap.Int("placements", len(placements)),
		zap.String("house_system", parsed.HouseSystem))

	return &insights.Chart{
		Placements:  placements,
		HouseSystem: parsed.HouseSystem,
		GeneratedAt: time.Now(),
	}, nil
}
