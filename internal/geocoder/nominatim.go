package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NominatimClient implements Geocoder using the OpenStreetMap Nominatim API.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewNominatim creates a Nominatim geocoding client.
func NewNominatim(baseURL string, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org/search"
	}
	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "line-weather-bot/1.0 (github.com/Kose-dev-T/line-weather-bot-final)",
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

// Resolve implements Geocoder.
func (c *NominatimClient) Resolve(ctx context.Context, placeName string) (Result, error) {
	placeName = strings.TrimSpace(placeName)
	if placeName == "" {
		return Result{}, ErrNotFound
	}

	params := url.Values{
		"q":               {placeName},
		"format":          {"json"},
		"limit":           {"1"},
		"countrycodes":    {"jp"},
		"accept-language": {"ja"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("geocoder: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocoder: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocoder: nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Result{}, fmt.Errorf("geocoder: decode response: %w", err)
	}

	if len(results) == 0 {
		return Result{}, fmt.Errorf("geocoder: resolve %q: %w", placeName, ErrNotFound)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocoder: invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("geocoder: invalid longitude %q: %w", r.Lon, err)
	}

	name := r.Name
	if name == "" {
		name = placeName
	}
	return Result{Latitude: lat, Longitude: lon, CanonicalName: name}, nil
}
