package openmeteo

import (
	"time"
)

const BASE_URL = "https://api.open-meteo.com/v1/forecast"

// The 12 hourly variables requested on every forecast call, in the
// order the API echoes them back.
var hourlyVariables = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"precipitation",
	"rain",
	"snowfall",
	"weather_code",
	"wind_speed_10m",
	"wind_direction_10m",
	"surface_pressure",
	"cloud_cover",
	"is_day",
	"shortwave_radiation",
}

// HourEntry is one row of the flattened hourly forecast table.
type HourEntry struct {
	Timestamp        time.Time
	Temperature      float64
	RelativeHumidity float64
	Precipitation    float64
	Rain             float64
	Snowfall         float64
	WeatherCode      int
	// Human readable WMO code description, empty for unmapped codes
	WeatherDescription string
	WindSpeed          float64
	WindDirection      float64 // Bearing in degrees, 0-360
	// One of the 8 compass points derived from WindDirection
	WindDirectionCardinal string
	SurfacePressure       float64
	CloudCover            float64
	IsDay                 bool
	ShortwaveRadiation    float64
}

type forecastResponse struct {
	Hourly *hourlyBlock `json:"hourly"`
}

// All arrays are equal length, aligned by index to Time.
type hourlyBlock struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
	Precipitation      []float64 `json:"precipitation"`
	Rain               []float64 `json:"rain"`
	Snowfall           []float64 `json:"snowfall"`
	WeatherCode        []int     `json:"weather_code"`
	WindSpeed10m       []float64 `json:"wind_speed_10m"`
	WindDirection10m   []float64 `json:"wind_direction_10m"`
	SurfacePressure    []float64 `json:"surface_pressure"`
	CloudCover         []float64 `json:"cloud_cover"`
	IsDay              []int     `json:"is_day"`
	ShortwaveRadiation []float64 `json:"shortwave_radiation"`
}

// WMO weather interpretation codes.
// See https://www.meteosource.com/wiki/weather-codes
var weatherDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mostly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Drizzle: Light",
	53: "Drizzle: Moderate",
	55: "Drizzle: Dense",
	56: "Freezing Drizzle: Light",
	57: "Freezing Drizzle: Dense",
	61: "Rain: Slight",
	63: "Rain: Moderate",
	65: "Rain: Heavy",
	66: "Freezing Rain: Light",
	67: "Freezing Rain: Heavy",
	71: "Snow fall: Slight",
	73: "Snow fall: Moderate",
	75: "Snow fall: Heavy",
	77: "Snow grains",
	80: "Rain showers: Slight",
	81: "Rain showers: Moderate",
	82: "Rain showers: Violent",
	85: "Snow showers: Slight",
	86: "Snow showers: Heavy",
	95: "Thunderstorm: Slight or moderate",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// WeatherDescription maps a WMO code to its description. Unmapped codes
// yield an empty string, not an error.
func WeatherDescription(code int) string {
	return weatherDescriptions[code]
}

// CompassDirection buckets a 0-360 degree bearing into one of 8 compass
// points using half-open 45 degree bands centered on each point, so
// [337.5, 360) and [0, 22.5) both map to N.
func CompassDirection(deg float64) string {
	switch {
	case deg >= 337.5 || deg < 22.5:
		return "N"
	case deg < 67.5:
		return "NE"
	case deg < 112.5:
		return "E"
	case deg < 157.5:
		return "SE"
	case deg < 202.5:
		return "S"
	case deg < 247.5:
		return "SW"
	case deg < 292.5:
		return "W"
	default:
		return "NW"
	}
}
