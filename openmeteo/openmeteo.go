// Package openmeteo fetches hourly weather forecasts from the Open-Meteo
// REST API and flattens the column-oriented response into rows.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Open-Meteo returns hourly times as local wall-clock strings in the
// requested timezone, without an offset.
const timeLayout = "2006-01-02T15:04"

type OpenMeteo struct {
	ApiUrl    string
	Latitude  float64
	Longitude float64
	Timezone  string
	Imperial  bool
}

func New(latitude, longitude float64, timezone string, imperial bool) *OpenMeteo {
	return &OpenMeteo{
		ApiUrl:    BASE_URL,
		Latitude:  latitude,
		Longitude: longitude,
		Timezone:  timezone,
		Imperial:  imperial,
	}
}

// GetHourlyForecast fetches forecastHours hours ahead (optionally
// pastHours back) and returns one row per hour, sorted ascending. The
// unit toggle switches temperature, wind speed and precipitation units
// together, never partially. A response without an hourly block yields
// an empty table, not an error.
func (o *OpenMeteo) GetHourlyForecast(ctx context.Context, forecastHours, pastHours int) ([]HourEntry, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", o.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", o.Longitude))
	params.Set("hourly", strings.Join(hourlyVariables, ","))
	params.Set("timezone", o.Timezone)
	params.Set("forecast_hours", strconv.Itoa(forecastHours))
	params.Set("past_hours", strconv.Itoa(pastHours))
	if o.Imperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
		params.Set("precipitation_unit", "inch")
	} else {
		params.Set("temperature_unit", "celsius")
		params.Set("wind_speed_unit", "ms")
		params.Set("precipitation_unit", "mm")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", o.ApiUrl, params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	client := http.Client{Timeout: 10 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting forecast: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading forecast response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	var forecast forecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("error unmarshaling forecast json: %w", err)
	}

	if forecast.Hourly == nil {
		return []HourEntry{}, nil
	}

	hourly := forecast.Hourly
	entries := make([]HourEntry, 0, len(hourly.Time))
	for i, ts := range hourly.Time {
		// The original collector treated the local wall-clock hour
		// as UTC, kept for snapshot compatibility
		timestamp, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("error parsing hourly time %q: %w", ts, err)
		}

		code := intAt(hourly.WeatherCode, i)
		direction := floatAt(hourly.WindDirection10m, i)
		entries = append(entries, HourEntry{
			Timestamp:             timestamp.UTC(),
			Temperature:           floatAt(hourly.Temperature2m, i),
			RelativeHumidity:      floatAt(hourly.RelativeHumidity2m, i),
			Precipitation:         floatAt(hourly.Precipitation, i),
			Rain:                  floatAt(hourly.Rain, i),
			Snowfall:              floatAt(hourly.Snowfall, i),
			WeatherCode:           code,
			WeatherDescription:    WeatherDescription(code),
			WindSpeed:             floatAt(hourly.WindSpeed10m, i),
			WindDirection:         direction,
			WindDirectionCardinal: CompassDirection(direction),
			SurfacePressure:       floatAt(hourly.SurfacePressure, i),
			CloudCover:            floatAt(hourly.CloudCover, i),
			IsDay:                 intAt(hourly.IsDay, i) == 1,
			ShortwaveRadiation:    floatAt(hourly.ShortwaveRadiation, i),
		})
	}

	slices.SortFunc(entries, func(a, b HourEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return entries, nil
}

// GetCurrentWeather returns the first hour of a 1-hour forecast as a
// single-row table. An empty forecast yields an empty table.
func (o *OpenMeteo) GetCurrentWeather(ctx context.Context) ([]HourEntry, error) {
	hourly, err := o.GetHourlyForecast(ctx, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(hourly) == 0 {
		return []HourEntry{}, nil
	}
	return hourly[:1], nil
}

func floatAt(values []float64, i int) float64 {
	if i >= len(values) {
		return 0
	}
	return values[i]
}

func intAt(values []int, i int) int {
	if i >= len(values) {
		return 0
	}
	return values[i]
}
