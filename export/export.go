// Package export writes fetched tables as CSV snapshots, one file per
// operation, with a leading integer index column.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/angas/homeenergy-go/openmeteo"
	"github.com/angas/homeenergy-go/tibber"
)

const (
	EnergyPricesFile   = "energy_prices.csv"
	ConsumptionFile    = "historical_consumption.csv"
	CurrentWeatherFile = "current_weather_data.csv"
	HourlyForecastFile = "hourly_forecast_data.csv"
)

func WriteEnergyPrices(dir string, prices []tibber.PriceEntry) error {
	header := []string{"total", "startsAt", "level"}
	rows := make([][]string, len(prices))
	for i, p := range prices {
		rows[i] = []string{
			formatFloat(p.Total),
			p.StartsAt.Format(time.RFC3339),
			p.Level,
		}
	}
	return writeCSV(filepath.Join(dir, EnergyPricesFile), header, rows)
}

func WriteConsumption(dir string, entries []tibber.ConsumptionEntry) error {
	header := []string{"from", "to", "consumption", "unitPrice", "unitPriceVAT", "totalCost", "currency", "totalPrice"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.From.Format(time.RFC3339),
			e.To.Format(time.RFC3339),
			formatFloat(e.Consumption),
			formatFloat(e.UnitPrice),
			formatFloat(e.UnitPriceVAT),
			formatFloat(e.TotalCost),
			e.Currency,
			formatFloat(e.TotalPrice),
		}
	}
	return writeCSV(filepath.Join(dir, ConsumptionFile), header, rows)
}

func WriteHourlyForecast(dir string, entries []openmeteo.HourEntry) error {
	return writeWeather(filepath.Join(dir, HourlyForecastFile), entries)
}

func WriteCurrentWeather(dir string, entries []openmeteo.HourEntry) error {
	return writeWeather(filepath.Join(dir, CurrentWeatherFile), entries)
}

func writeWeather(path string, entries []openmeteo.HourEntry) error {
	header := []string{
		"timestamp", "temperature_2m", "relative_humidity_2m", "precipitation",
		"rain", "snowfall", "weather_code", "weather_description",
		"wind_speed_10m", "wind_direction_10m", "wind_direction_cardinal",
		"surface_pressure", "cloud_cover", "is_day", "shortwave_radiation",
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		isDay := "0"
		if e.IsDay {
			isDay = "1"
		}
		rows[i] = []string{
			e.Timestamp.Format(time.RFC3339),
			formatFloat(e.Temperature),
			formatFloat(e.RelativeHumidity),
			formatFloat(e.Precipitation),
			formatFloat(e.Rain),
			formatFloat(e.Snowfall),
			strconv.Itoa(e.WeatherCode),
			e.WeatherDescription,
			formatFloat(e.WindSpeed),
			formatFloat(e.WindDirection),
			e.WindDirectionCardinal,
			formatFloat(e.SurfacePressure),
			formatFloat(e.CloudCover),
			isDay,
			formatFloat(e.ShortwaveRadiation),
		}
	}
	return writeCSV(path, header, rows)
}

// writeCSV writes one snapshot with a default integer row index as the
// first, unnamed column.
func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(append([]string{""}, header...)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(append([]string{strconv.Itoa(i)}, row...)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv file: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
