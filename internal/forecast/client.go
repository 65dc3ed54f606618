// Package forecast fetches daily forecasts from the tsukumijima
// (livedoor-compatible) weather API, keyed by station code.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Forecast is today's forecast for one station, flattened for rendering.
type Forecast struct {
	CityName     string
	Date         string
	Telop        string
	TempMax      string
	TempMin      string
	ChanceOfRain string
}

// Client fetches forecasts over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a forecast client. baseURL is overridable for tests;
// empty means the production endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://weather.tsukumijima.net/api/forecast"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Location struct {
		City string `json:"city"`
	} `json:"location"`
	Forecasts []struct {
		Date        string `json:"date"`
		Telop       string `json:"telop"`
		Temperature struct {
			Min *struct {
				Celsius string `json:"celsius"`
			} `json:"min"`
			Max *struct {
				Celsius string `json:"celsius"`
			} `json:"max"`
		} `json:"temperature"`
		ChanceOfRain struct {
			T00 string `json:"T00_06"`
			T06 string `json:"T06_12"`
			T12 string `json:"T12_18"`
			T18 string `json:"T18_24"`
		} `json:"chanceOfRain"`
	} `json:"forecasts"`
}

// Fetch returns today's forecast for a station code.
func (c *Client) Fetch(ctx context.Context, stationCode string) (Forecast, error) {
	params := url.Values{"city": {stationCode}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("forecast: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("forecast: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("forecast: API returned status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Forecast{}, fmt.Errorf("forecast: decode response: %w", err)
	}
	if len(body.Forecasts) == 0 {
		return Forecast{}, fmt.Errorf("forecast: no forecasts for station %s", stationCode)
	}

	today := body.Forecasts[0]
	f := Forecast{
		CityName: body.Location.City,
		Date:     today.Date,
		Telop:    today.Telop,
		TempMax:  "--",
		TempMin:  "--",
		ChanceOfRain: strings.Join([]string{
			today.ChanceOfRain.T00,
			today.ChanceOfRain.T06,
			today.ChanceOfRain.T12,
			today.ChanceOfRain.T18,
		}, " / "),
	}
	if today.Temperature.Max != nil {
		f.TempMax = today.Temperature.Max.Celsius
	}
	if today.Temperature.Min != nil {
		f.TempMin = today.Temperature.Min.Celsius
	}
	return f, nil
}
