package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/database"
)

// NewMaintenanceTask purges old archive rows and log entries and rotates
// database backups.
func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		retention := cnfg.Database.GetDataRetentionDays()
		if err := db.PurgeEnergyPrices(ctx, retention); err != nil {
			logger.Error("maintenance task error, purging energy prices", slog.Any("error", err))
		}
		if err := db.PurgeConsumption(ctx, retention); err != nil {
			logger.Error("maintenance task error, purging consumption", slog.Any("error", err))
		}
		if err := db.PurgeWeatherForecast(ctx, retention); err != nil {
			logger.Error("maintenance task error, purging weather forecast", slog.Any("error", err))
		}
		if err := db.PurgeLiveMeasurements(ctx, retention); err != nil {
			logger.Error("maintenance task error, purging live measurements", slog.Any("error", err))
		}
		if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("maintenance task error, purging log", slog.Any("error", err))
		}

		if err := db.Backup(ctx); err != nil {
			logger.Error("maintenance task error, backing up database", slog.Any("error", err))
		}
		if err := db.PurgeBackups(ctx, cnfg.Database.GetBackupRetentionDays()); err != nil {
			logger.Error("maintenance task error, purging backups", slog.Any("error", err))
		}

		logger.Info("maintenance task done")
	}
}
