package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"location": {"city": "東京"},
	"forecasts": [
		{
			"date": "2026-09-01",
			"telop": "晴れ",
			"temperature": {
				"min": {"celsius": "22"},
				"max": {"celsius": "31"}
			},
			"chanceOfRain": {"T00_06": "0%", "T06_12": "10%", "T12_18": "20%", "T18_24": "10%"}
		},
		{"date": "2026-09-02", "telop": "曇り", "temperature": {}, "chanceOfRain": {}}
	]
}`

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "130010", r.URL.Query().Get("city"))
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	f, err := c.Fetch(context.Background(), "130010")
	require.NoError(t, err)

	assert.Equal(t, Forecast{
		CityName:     "東京",
		Date:         "2026-09-01",
		Telop:        "晴れ",
		TempMax:      "31",
		TempMin:      "22",
		ChanceOfRain: "0% / 10% / 20% / 10%",
	}, f)
}

func TestClient_FetchMissingTemperatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location":{"city":"大阪"},"forecasts":[{"date":"2026-09-01","telop":"雨","temperature":{"min":null,"max":null},"chanceOfRain":{}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	f, err := c.Fetch(context.Background(), "270000")
	require.NoError(t, err)
	assert.Equal(t, "--", f.TempMax)
	assert.Equal(t, "--", f.TempMin)
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "malformed json", status: http.StatusOK, body: "{"},
		{name: "no forecasts", status: http.StatusOK, body: `{"forecasts":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 5*time.Second)
			_, err := c.Fetch(context.Background(), "130010")
			assert.Error(t, err)
		})
	}
}

func TestBuildFlexMessage(t *testing.T) {
	f := Forecast{
		CityName:     "東京",
		Date:         "2026-09-01",
		Telop:        "晴れ",
		TempMax:      "31",
		TempMin:      "22",
		ChanceOfRain: "0% / 10% / 20% / 10%",
	}

	msg := BuildFlexMessage(f, "八丈島")
	assert.Equal(t, "flex", msg.Type)
	assert.Equal(t, "八丈島の天気予報", msg.AltText)

	// The registered display name wins over the API city name.
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "八丈島")
	assert.Contains(t, string(raw), "晴れ")
	assert.Contains(t, string(raw), "31°C")

	// Falls back to the API city name when no display name is registered.
	msg = BuildFlexMessage(f, "")
	assert.Equal(t, "東京の天気予報", msg.AltText)
}
