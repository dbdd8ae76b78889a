package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const hourlyBody = `{
	"hourly": {
		"time": ["2024-03-01T00:00", "2024-03-01T01:00", "2024-03-01T02:00"],
		"temperature_2m": [5.1, 4.8, 4.5],
		"relative_humidity_2m": [80, 82, 85],
		"precipitation": [0.0, 0.2, 0.0],
		"rain": [0.0, 0.2, 0.0],
		"snowfall": [0.0, 0.0, 0.0],
		"weather_code": [0, 61, 42],
		"wind_speed_10m": [3.5, 4.0, 4.2],
		"wind_direction_10m": [10.0, 200.0, 337.5],
		"surface_pressure": [1013.2, 1012.8, 1012.5],
		"cloud_cover": [10, 90, 100],
		"is_day": [0, 0, 1],
		"shortwave_radiation": [0.0, 0.0, 12.5]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenMeteo {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	om := New(52.0766, 4.2986, "Europe/Amsterdam", false)
	om.ApiUrl = server.URL
	return om
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		bearing  float64
		expected string
	}{
		{0, "N"},
		{10, "N"},
		{22.4, "N"},
		{22.5, "NE"},
		{45, "NE"},
		{67.5, "E"},
		{90, "E"},
		{112.5, "SE"},
		{157.5, "S"},
		{200, "S"},
		{202.5, "SW"},
		{247.5, "W"},
		{292.5, "NW"},
		{337.4, "NW"},
		{337.5, "N"},
		{359.99, "N"},
	}

	for _, tt := range tests {
		if got := CompassDirection(tt.bearing); got != tt.expected {
			t.Errorf("CompassDirection(%v) expected %q, got %q", tt.bearing, tt.expected, got)
		}
	}
}

func TestWeatherDescription(t *testing.T) {
	if got := WeatherDescription(0); got != "Clear sky" {
		t.Errorf("expected Clear sky for code 0, got %q", got)
	}
	if got := WeatherDescription(95); got != "Thunderstorm: Slight or moderate" {
		t.Errorf("unexpected description for code 95: %q", got)
	}
	if got := WeatherDescription(42); got != "" {
		t.Errorf("expected empty description for unmapped code, got %q", got)
	}
}

func TestGetHourlyForecastFlattensColumns(t *testing.T) {
	var gotQuery map[string]string
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		w.Write([]byte(hourlyBody))
	})

	entries, err := om.GetHourlyForecast(context.Background(), 72, 24)
	if err != nil {
		t.Fatalf("GetHourlyForecast() returned error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected row count to equal the time array length (3), got %d", len(entries))
	}

	if gotQuery["latitude"] != "52.0766" || gotQuery["longitude"] != "4.2986" {
		t.Errorf("unexpected coordinates: %s, %s", gotQuery["latitude"], gotQuery["longitude"])
	}
	if gotQuery["forecast_hours"] != "72" || gotQuery["past_hours"] != "24" {
		t.Errorf("unexpected hour window: %s/%s", gotQuery["forecast_hours"], gotQuery["past_hours"])
	}
	if gotQuery["temperature_unit"] != "celsius" || gotQuery["wind_speed_unit"] != "ms" || gotQuery["precipitation_unit"] != "mm" {
		t.Errorf("expected metric units, got %s/%s/%s",
			gotQuery["temperature_unit"], gotQuery["wind_speed_unit"], gotQuery["precipitation_unit"])
	}
	if !strings.Contains(gotQuery["hourly"], "shortwave_radiation") {
		t.Errorf("expected all hourly variables requested, got %q", gotQuery["hourly"])
	}

	first := entries[0]
	expectedTs := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(expectedTs) {
		t.Errorf("expected first timestamp %v, got %v", expectedTs, first.Timestamp)
	}
	if first.Temperature != 5.1 || first.CloudCover != 10 {
		t.Errorf("row/column misalignment: %+v", first)
	}
	if first.WeatherDescription != "Clear sky" {
		t.Errorf("expected derived description Clear sky, got %q", first.WeatherDescription)
	}
	if first.WindDirectionCardinal != "N" {
		t.Errorf("expected bearing 10 to map to N, got %q", first.WindDirectionCardinal)
	}
	if first.IsDay {
		t.Errorf("expected is_day 0 to map to false")
	}

	if entries[1].WindDirectionCardinal != "S" {
		t.Errorf("expected bearing 200 to map to S, got %q", entries[1].WindDirectionCardinal)
	}
	if entries[1].WeatherDescription != "Rain: Slight" {
		t.Errorf("expected Rain: Slight for code 61, got %q", entries[1].WeatherDescription)
	}

	last := entries[2]
	if last.WindDirectionCardinal != "N" {
		t.Errorf("expected bearing 337.5 to map to N, got %q", last.WindDirectionCardinal)
	}
	if last.WeatherDescription != "" {
		t.Errorf("expected empty description for unmapped code 42, got %q", last.WeatherDescription)
	}
	if !last.IsDay {
		t.Errorf("expected is_day 1 to map to true")
	}

	for i := 1; i < len(entries); i++ {
		if !entries[i-1].Timestamp.Before(entries[i].Timestamp) {
			t.Errorf("entries not sorted ascending at index %d", i)
		}
	}
}

func TestGetHourlyForecastImperialUnits(t *testing.T) {
	var gotQuery map[string]string
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		w.Write([]byte(`{"hourly": {"time": []}}`))
	})
	om.Imperial = true

	if _, err := om.GetHourlyForecast(context.Background(), 1, 0); err != nil {
		t.Fatalf("GetHourlyForecast() returned error: %v", err)
	}
	if gotQuery["temperature_unit"] != "fahrenheit" || gotQuery["wind_speed_unit"] != "mph" || gotQuery["precipitation_unit"] != "inch" {
		t.Errorf("expected imperial units applied together, got %s/%s/%s",
			gotQuery["temperature_unit"], gotQuery["wind_speed_unit"], gotQuery["precipitation_unit"])
	}
}

func TestGetHourlyForecastMissingHourlyBlock(t *testing.T) {
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latitude": 52.0766}`))
	})

	entries, err := om.GetHourlyForecast(context.Background(), 72, 0)
	if err != nil {
		t.Fatalf("expected no error for a missing hourly block, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected an empty table, got %d rows", len(entries))
	}
}

func TestGetHourlyForecastHTTPError(t *testing.T) {
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := om.GetHourlyForecast(context.Background(), 72, 0)
	if err == nil {
		t.Fatalf("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected status and body in error, got %q", err.Error())
	}
}

func TestGetCurrentWeatherReturnsFirstForecastRow(t *testing.T) {
	var gotForecastHours string
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotForecastHours = r.URL.Query().Get("forecast_hours")
		w.Write([]byte(hourlyBody))
	})

	current, err := om.GetCurrentWeather(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentWeather() returned error: %v", err)
	}
	if gotForecastHours != "1" {
		t.Errorf("expected a 1-hour forecast request, got %q", gotForecastHours)
	}
	if len(current) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(current))
	}

	full, err := om.GetHourlyForecast(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("GetHourlyForecast() returned error: %v", err)
	}
	if current[0] != full[0] {
		t.Errorf("expected current weather to equal the first forecast row")
	}
}

func TestGetCurrentWeatherEmptyForecast(t *testing.T) {
	om := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"time": []}}`))
	})

	current, err := om.GetCurrentWeather(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentWeather() returned error: %v", err)
	}
	if len(current) != 0 {
		t.Fatalf("expected an empty table, got %d rows", len(current))
	}
}
