package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/angas/homeenergy-go/types/maybe"
)

type LiveMeasurementRow struct {
	Timestamp              time.Time
	Power                  float64
	AccumulatedConsumption float64
	AccumulatedCost        float64
	Currency               string
	MinPower               float64
	AveragePower           float64
	MaxPower               float64
	PowerProduction        maybe.Maybe[float64]
}

func (d *Database) SaveLiveMeasurement(ctx context.Context, row LiveMeasurementRow) error {
	var production sql.NullFloat64
	if row.PowerProduction.IsValid() {
		production = sql.NullFloat64{Float64: row.PowerProduction.Value(), Valid: true}
	}

	_, err := d.write.ExecContext(ctx, `
		INSERT INTO live_measurement (
			timestamp,
			power,
			accumulated_consumption,
			accumulated_cost,
			currency,
			min_power,
			average_power,
			max_power,
			power_production
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Timestamp.UTC().Format(time.RFC3339),
		row.Power,
		row.AccumulatedConsumption,
		row.AccumulatedCost,
		row.Currency,
		row.MinPower,
		row.AveragePower,
		row.MaxPower,
		production)
	if err != nil {
		return fmt.Errorf("saving live measurement: %w", err)
	}
	return nil
}

func (d *Database) GetLatestLiveMeasurement(ctx context.Context) (LiveMeasurementRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT timestamp, power, accumulated_consumption, accumulated_cost,
			currency, min_power, average_power, max_power, power_production
		FROM live_measurement
		ORDER BY id DESC
		LIMIT 1`)

	var ts string
	var production sql.NullFloat64
	var lm LiveMeasurementRow
	err := row.Scan(
		&ts,
		&lm.Power,
		&lm.AccumulatedConsumption,
		&lm.AccumulatedCost,
		&lm.Currency,
		&lm.MinPower,
		&lm.AveragePower,
		&lm.MaxPower,
		&production)
	if err != nil {
		return LiveMeasurementRow{}, fmt.Errorf("scanning live measurement row: %w", err)
	}

	lm.Timestamp, err = time.Parse(time.RFC3339, ts)
	if err != nil {
		return LiveMeasurementRow{}, fmt.Errorf("parsing live measurement timestamp: %w", err)
	}
	lm.PowerProduction = maybe.SqlNull(production.Float64, production.Valid)

	return lm, nil
}

func (d *Database) PurgeLiveMeasurements(ctx context.Context, retentionDays int) error {
	d.logger.Debug("purging live measurements")
	before := time.Now().UTC().Add(-24 * time.Hour * time.Duration(retentionDays))
	_, err := d.write.ExecContext(ctx, `
		DELETE FROM live_measurement WHERE timestamp < ?`,
		before.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("purging live measurements: %w", err)
	}
	return nil
}
