// README: Forecast client interface and HTTP implementation.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ForecastClient fetches the current forecast for a destination.
// The poller depends on this interface so tests can inject a double.
type ForecastClient interface {
	Fetch(ctx context.Context, destination string) (*Snapshot, error)
}

// HTTPForecastClient calls an upstream forecast API over HTTP.
type HTTPForecastClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPForecastClient(baseURL string) *HTTPForecastClient {
	return &HTTPForecastClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// upstreamForecast is the wire shape of the forecast API.
type upstreamForecast struct {
	Location      string  `json:"location"`
	TemperatureC  float64 `json:"temperature_c"`
	Condition     string  `json:"condition"`
	Precipitation int     `json:"precipitation_chance"`
}

func (c *HTTPForecastClient) Fetch(ctx context.Context, destination string) (*Snapshot, error) {
	u := fmt.Sprintf("%s/current?q=%s", c.baseURL, url.QueryEscape(destination))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: fetch %s: %w", destination, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: upstream status %d for %s", resp.StatusCode, destination)
	}

	var uf upstreamForecast
	if err := json.NewDecoder(resp.Body).Decode(&uf); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}

	return &Snapshot{
		Destination: destination,
		TempC:       uf.TemperatureC,
		Condition:   uf.Condition,
		PrecipPct:   uf.Precipitation,
		FetchedAt:   time.Now(),
	}, nil
}
