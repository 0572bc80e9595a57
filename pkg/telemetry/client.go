package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

const defaultRequestTimeout = 30 * time.Second

var (
	errBaseURLRequired = errors.New("telemetry base url is required")
	errPlantIDRequired = errors.New("telemetry plant id is required")
)

// Reading is one quarter-hourly sample as returned by the monitoring portal.
type Reading struct {
	Timestamp  time.Time       `json:"timestamp"`
	MeterID    string          `json:"meterId"`
	PlantID    string          `json:"plantId"`
	RoofID     string          `json:"roofId"`
	Value      decimal.Decimal `json:"value"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

type todayResponse struct {
	PlantID  string    `json:"plantId"`
	Readings []Reading `json:"readings"`
}

// Client calls the external PV monitoring portal over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	plantID    string
}

// NewClient validates the portal configuration and returns a client scoped to
// the configured plant.
func NewClient(ctx context.Context, cfg config.TelemetryConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}
	plantID := strings.TrimSpace(cfg.PlantID)
	if plantID == "" {
		return nil, errPlantIDRequired
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	if logg != nil {
		logg.Info(logg.WithPlantID(ctx, plantID), "telemetry client initialized")
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		plantID:    plantID,
	}, nil
}

// PlantID reports the plant this client is scoped to.
func (c *Client) PlantID() string {
	if c == nil {
		return ""
	}
	return c.plantID
}

// FetchToday pulls the full current-day dataset for the configured plant. The
// portal always returns the whole day so far, never a delta.
func (c *Client) FetchToday(ctx context.Context) ([]Reading, error) {
	endpoint := fmt.Sprintf("%s/v1/plants/%s/readings/today", c.baseURL, url.PathEscape(c.plantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch today readings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("portal returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload todayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode today readings: %w", err)
	}

	readings := payload.Readings
	for i := range readings {
		if readings[i].PlantID == "" {
			readings[i].PlantID = c.plantID
		}
	}
	return readings, nil
}
