package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/tibber"
)

// NewLiveMeasurementTask grabs a single live measurement snapshot and
// archives it. Accounts without a Pulse device simply have none.
func NewLiveMeasurementTask(logger *slog.Logger, db *database.Database, tb *tibber.Tibber, homeId string) func() {
	return func() {
		logger.Debug("running live measurement task...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		lm, err := tb.GetLiveMeasurement(ctx, homeId)
		if errors.Is(err, tibber.ErrNoLiveMeasurement) {
			logger.Info("no live measurement available for this home")
			return
		}
		if err != nil {
			logger.Error("live measurement task error, fetching snapshot", slog.Any("error", err))
			return
		}

		err = db.SaveLiveMeasurement(ctx, database.LiveMeasurementRow{
			Timestamp:              lm.Timestamp,
			Power:                  lm.Power,
			AccumulatedConsumption: lm.AccumulatedConsumption,
			AccumulatedCost:        lm.AccumulatedCost,
			Currency:               lm.Currency,
			MinPower:               lm.MinPower,
			AveragePower:           lm.AveragePower,
			MaxPower:               lm.MaxPower,
			PowerProduction:        lm.PowerProduction,
		})
		if err != nil {
			logger.Error("live measurement task error, archiving snapshot", slog.Any("error", err))
			return
		}

		logger.Info("live measurement task done",
			slog.Time("timestamp", lm.Timestamp),
			slog.Float64("power", lm.Power))
	}
}
