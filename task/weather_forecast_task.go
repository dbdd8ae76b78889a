package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/export"
	"github.com/angas/homeenergy-go/hours"
	"github.com/angas/homeenergy-go/openmeteo"
)

// NewWeatherForecastTask fetches the hourly forecast window, archives it
// and writes the CSV snapshot.
func NewWeatherForecastTask(logger *slog.Logger, db *database.Database, om *openmeteo.OpenMeteo, cnfg config.AppConfigWeather, outDir string) func() {
	return func() {
		logger.Debug("running weather forecast task...",
			slog.Int("forecastHours", cnfg.GetForecastHours()),
			slog.Int("pastHours", cnfg.PastHours))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fc, err := om.GetHourlyForecast(ctx, cnfg.GetForecastHours(), cnfg.PastHours)
		if err != nil {
			logger.Error("weather forecast task error, fetching forecast", slog.Any("error", err))
			return
		}
		if len(fc) == 0 {
			logger.Info("no hourly weather data found")
			return
		}

		rows := make([]database.WeatherForecastRow, len(fc))
		for i, entry := range fc {
			rows[i] = toWeatherForecastRow(entry)
		}
		if err := db.SaveWeatherForecast(ctx, rows); err != nil {
			logger.Error("weather forecast task error, archiving forecast", slog.Any("error", err))
		}

		if err := export.WriteHourlyForecast(outDir, fc); err != nil {
			logger.Error("weather forecast task error, writing snapshot", slog.Any("error", err))
			return
		}

		logger.Info("weather forecast task done", slog.Int("noOfHours", len(fc)))
	}
}

func toWeatherForecastRow(entry openmeteo.HourEntry) database.WeatherForecastRow {
	return database.WeatherForecastRow{
		When:                  hours.FromTime(entry.Timestamp),
		Temperature:           entry.Temperature,
		RelativeHumidity:      entry.RelativeHumidity,
		Precipitation:         entry.Precipitation,
		Rain:                  entry.Rain,
		Snowfall:              entry.Snowfall,
		WeatherCode:           entry.WeatherCode,
		WeatherDescription:    entry.WeatherDescription,
		WindSpeed:             entry.WindSpeed,
		WindDirection:         entry.WindDirection,
		WindDirectionCardinal: entry.WindDirectionCardinal,
		SurfacePressure:       entry.SurfacePressure,
		CloudCover:            entry.CloudCover,
		IsDay:                 entry.IsDay,
		ShortwaveRadiation:    entry.ShortwaveRadiation,
	}
}
