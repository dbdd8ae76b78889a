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

// NewEnergyPriceTask fetches the merged current/today/tomorrow price
// table, archives it and writes the CSV snapshot. Tomorrow's prices only
// show up after midday, a short table is normal.
func NewEnergyPriceTask(logger *slog.Logger, db *database.Database, tb *tibber.Tibber, homeId string, outDir string) func() {
	return func() {
		logger.Debug("running energy price task...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		prices, err := tb.GetPrices(ctx, homeId)
		if err != nil {
			logger.Error("energy price task error, fetching prices", slog.Any("error", err))
			return
		}
		if len(prices) == 0 {
			logger.Info("no current or upcoming price data found")
			return
		}

		rows := make([]database.EnergyPriceRow, len(prices))
		for i, p := range prices {
			rows[i] = database.EnergyPriceRow{
				When:  hours.FromTime(p.StartsAt),
				Total: p.Total,
				Level: p.Level,
			}
		}
		if err := db.SaveEnergyPrices(ctx, rows); err != nil {
			logger.Error("energy price task error, archiving prices", slog.Any("error", err))
		}

		if err := export.WriteEnergyPrices(outDir, prices); err != nil {
			logger.Error("energy price task error, writing snapshot", slog.Any("error", err))
			return
		}

		logger.Info("energy price task done", slog.Int("noOfHours", len(prices)))
	}
}
