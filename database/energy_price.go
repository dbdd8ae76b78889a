package database

import (
	"context"
	"fmt"

	"github.com/angas/homeenergy-go/convert"
	"github.com/angas/homeenergy-go/hours"
)

type EnergyPriceRow struct {
	When  hours.DateHour
	Total float64
	Level string
}

func (d *Database) SaveEnergyPrices(ctx context.Context, rows []EnergyPriceRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO energy_price (date, hour, total, level) VALUES (?, ?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET
				total = excluded.total,
				level = excluded.level`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Total, 4),
			row.Level)
		if err != nil {
			return fmt.Errorf("saving energy price for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetEnergyPrice(ctx context.Context, dh hours.DateHour) (EnergyPriceRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT date, hour, total, level
		FROM energy_price
		WHERE date = ? AND hour = ?`,
		dh.Date, dh.Hour)

	var ep EnergyPriceRow
	if err := row.Scan(&ep.When.Date, &ep.When.Hour, &ep.Total, &ep.Level); err != nil {
		return EnergyPriceRow{}, fmt.Errorf("scanning energy price row: %w", err)
	}

	return ep, nil
}

func (d *Database) GetEnergyPricesFrom(ctx context.Context, dh hours.DateHour) ([]EnergyPriceRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT date, hour, total, level
		FROM energy_price
		WHERE (date = ? AND hour >= ?) OR date > ?
		ORDER BY date, hour ASC`,
		dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching energy prices: %w", err)
	}
	defer rows.Close()

	var prices []EnergyPriceRow
	for rows.Next() {
		var ep EnergyPriceRow
		if err := rows.Scan(&ep.When.Date, &ep.When.Hour, &ep.Total, &ep.Level); err != nil {
			return nil, fmt.Errorf("scanning energy price row: %w", err)
		}
		prices = append(prices, ep)
	}

	return prices, rows.Err()
}

func (d *Database) PurgeEnergyPrices(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "energy_price", retentionDays)
}
