package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/export"
	"github.com/angas/homeenergy-go/hours"
	"github.com/angas/homeenergy-go/tibber"
)

// NewConsumptionTask fetches hourly consumption history, archives it and
// writes the CSV snapshot. A fresh meter has no history yet, that's not
// an error.
func NewConsumptionTask(logger *slog.Logger, db *database.Database, tb *tibber.Tibber, homeId string, lastHours int, outDir string) func() {
	return func() {
		logger.Debug("running consumption task...", slog.Int("hours", lastHours))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		entries, err := tb.GetConsumption(ctx, homeId, lastHours)
		if err != nil {
			logger.Error("consumption task error, fetching history", slog.Any("error", err))
			return
		}
		if len(entries) == 0 {
			logger.Info("no consumption history found", slog.Int("hours", lastHours))
			return
		}

		rows := make([]database.ConsumptionRow, len(entries))
		for i, e := range entries {
			rows[i] = database.ConsumptionRow{
				When:         hours.FromTime(e.From),
				Consumption:  e.Consumption,
				UnitPrice:    e.UnitPrice,
				UnitPriceVAT: e.UnitPriceVAT,
				TotalPrice:   e.TotalPrice,
				TotalCost:    e.TotalCost,
				Currency:     e.Currency,
			}
		}
		if err := db.SaveConsumption(ctx, rows); err != nil {
			logger.Error("consumption task error, archiving history", slog.Any("error", err))
		}

		if err := export.WriteConsumption(outDir, entries); err != nil {
			logger.Error("consumption task error, writing snapshot", slog.Any("error", err))
			return
		}

		logger.Info("consumption task done", slog.Int("noOfHours", len(entries)))
	}
}
