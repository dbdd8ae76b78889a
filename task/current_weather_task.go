package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/export"
	"github.com/angas/homeenergy-go/openmeteo"
)

// NewCurrentWeatherTask writes the single-row current weather snapshot,
// the first hour of a 1-hour forecast.
func NewCurrentWeatherTask(logger *slog.Logger, db *database.Database, om *openmeteo.OpenMeteo, outDir string) func() {
	return func() {
		logger.Debug("running current weather task...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		current, err := om.GetCurrentWeather(ctx)
		if err != nil {
			logger.Error("current weather task error, fetching weather", slog.Any("error", err))
			return
		}
		if len(current) == 0 {
			logger.Info("no current weather data found")
			return
		}

		rows := make([]database.WeatherForecastRow, len(current))
		for i, entry := range current {
			rows[i] = toWeatherForecastRow(entry)
		}
		if err := db.SaveWeatherForecast(ctx, rows); err != nil {
			logger.Error("current weather task error, archiving weather", slog.Any("error", err))
		}

		if err := export.WriteCurrentWeather(outDir, current); err != nil {
			logger.Error("current weather task error, writing snapshot", slog.Any("error", err))
			return
		}

		logger.Info("current weather task done", slog.Time("timestamp", current[0].Timestamp))
	}
}
