// Package fallback calls the paid vehicle-data API used when the free
// registry scrape fails. One authenticated GET per resolution, no retry:
// every call costs money, so a failure here just surfaces as "not found"
// upstream.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bimmerhuolto/backend/engine/domain"
)

// Config for the fallback client.
type Config struct {
	// BaseURL of the lookup API.
	BaseURL string
	// APIKey is the bearer credential. Empty means the fallback path is
	// disabled: Fetch fails cleanly without a network call.
	APIKey string
	// Timeout bounds the single HTTP attempt.
	Timeout time.Duration
}

// DefaultConfig returns production defaults; the key always comes from the
// environment.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.rekisteridata.fi/v2/vehicles",
		Timeout: 10 * time.Second,
	}
}

// Client calls the paid lookup API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. A zero Timeout gets the default bound.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// apiResponse is the provider's JSON shape.
type apiResponse struct {
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	Color          string `json:"color"`
	EngineSize     string `json:"engine_size"`
	FuelType       string `json:"fuel_type"`
	Power          string `json:"power"`
	CO2            string `json:"co2_emissions"`
	EmissionClass  string `json:"emission_class"`
	VehicleClass   string `json:"vehicle_class"`
	Mass           string `json:"mass"`
	Seats          int    `json:"seats"`
	NextInspection string `json:"next_inspection"`
	TaxClass       string `json:"tax_class"`
}

// Fetch performs the single lookup attempt. Any transport or HTTP error is
// returned as-is; the resolver treats all of them as a soft failure.
func (c *Client) Fetch(ctx context.Context, plate string) (*domain.VehicleFields, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("fallback api: %w", domain.ErrNoCredential)
	}

	u := fmt.Sprintf("%s/%s", c.cfg.BaseURL, url.PathEscape(plate))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fallback api: no data for %s", plate)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback api: unexpected status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fallback api: decode: %w", err)
	}

	fields := &domain.VehicleFields{
		Make:           body.Make,
		Model:          body.Model,
		Year:           body.Year,
		Color:          body.Color,
		EngineSize:     body.EngineSize,
		FuelType:       body.FuelType,
		Power:          body.Power,
		CO2Emissions:   body.CO2,
		EmissionClass:  body.EmissionClass,
		VehicleClass:   body.VehicleClass,
		Mass:           body.Mass,
		Seats:          body.Seats,
		NextInspection: body.NextInspection,
		TaxClass:       body.TaxClass,
	}
	if !fields.Complete() {
		return nil, fmt.Errorf("fallback api: incomplete data for %s", plate)
	}
	return fields, nil
}
