package database

import (
	"context"
	"fmt"

	"github.com/angas/homeenergy-go/convert"
	"github.com/angas/homeenergy-go/hours"
)

type ConsumptionRow struct {
	When         hours.DateHour
	Consumption  float64
	UnitPrice    float64
	UnitPriceVAT float64
	TotalPrice   float64
	TotalCost    float64
	Currency     string
}

func (d *Database) SaveConsumption(ctx context.Context, rows []ConsumptionRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO consumption (
				date,
				hour,
				consumption,
				unit_price,
				unit_price_vat,
				total_price,
				total_cost,
				currency
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET
				consumption = excluded.consumption,
				unit_price = excluded.unit_price,
				unit_price_vat = excluded.unit_price_vat,
				total_price = excluded.total_price,
				total_cost = excluded.total_cost,
				currency = excluded.currency`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Consumption, 4),
			convert.RoundFloat64(row.UnitPrice, 4),
			convert.RoundFloat64(row.UnitPriceVAT, 4),
			convert.RoundFloat64(row.TotalPrice, 4),
			convert.RoundFloat64(row.TotalCost, 4),
			row.Currency)
		if err != nil {
			return fmt.Errorf("saving consumption for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetConsumptionFrom(ctx context.Context, dh hours.DateHour) ([]ConsumptionRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT date, hour, consumption, unit_price, unit_price_vat, total_price, total_cost, currency
		FROM consumption
		WHERE (date = ? AND hour >= ?) OR date > ?
		ORDER BY date, hour ASC`,
		dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching consumption: %w", err)
	}
	defer rows.Close()

	var result []ConsumptionRow
	for rows.Next() {
		var c ConsumptionRow
		err := rows.Scan(
			&c.When.Date,
			&c.When.Hour,
			&c.Consumption,
			&c.UnitPrice,
			&c.UnitPriceVAT,
			&c.TotalPrice,
			&c.TotalCost,
			&c.Currency)
		if err != nil {
			return nil, fmt.Errorf("scanning consumption row: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

func (d *Database) PurgeConsumption(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "consumption", retentionDays)
}
