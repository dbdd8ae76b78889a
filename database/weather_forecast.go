package database

import (
	"context"
	"fmt"

	"github.com/angas/homeenergy-go/convert"
	"github.com/angas/homeenergy-go/hours"
)

type WeatherForecastRow struct {
	When                  hours.DateHour
	Temperature           float64
	RelativeHumidity      float64
	Precipitation         float64
	Rain                  float64
	Snowfall              float64
	WeatherCode           int
	WeatherDescription    string
	WindSpeed             float64
	WindDirection         float64
	WindDirectionCardinal string
	SurfacePressure       float64
	CloudCover            float64
	IsDay                 bool
	ShortwaveRadiation    float64
}

func (d *Database) SaveWeatherForecast(ctx context.Context, rows []WeatherForecastRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO weather_forecast (
				date,
				hour,
				temperature,
				relative_humidity,
				precipitation,
				rain,
				snowfall,
				weather_code,
				weather_description,
				wind_speed,
				wind_direction,
				wind_direction_cardinal,
				surface_pressure,
				cloud_cover,
				is_day,
				shortwave_radiation
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET
				temperature = excluded.temperature,
				relative_humidity = excluded.relative_humidity,
				precipitation = excluded.precipitation,
				rain = excluded.rain,
				snowfall = excluded.snowfall,
				weather_code = excluded.weather_code,
				weather_description = excluded.weather_description,
				wind_speed = excluded.wind_speed,
				wind_direction = excluded.wind_direction,
				wind_direction_cardinal = excluded.wind_direction_cardinal,
				surface_pressure = excluded.surface_pressure,
				cloud_cover = excluded.cloud_cover,
				is_day = excluded.is_day,
				shortwave_radiation = excluded.shortwave_radiation`,
			row.When.Date,
			row.When.Hour,
			convert.TwoDecimals(row.Temperature),
			convert.TwoDecimals(row.RelativeHumidity),
			convert.TwoDecimals(row.Precipitation),
			convert.TwoDecimals(row.Rain),
			convert.TwoDecimals(row.Snowfall),
			row.WeatherCode,
			row.WeatherDescription,
			convert.TwoDecimals(row.WindSpeed),
			convert.TwoDecimals(row.WindDirection),
			row.WindDirectionCardinal,
			convert.TwoDecimals(row.SurfacePressure),
			convert.TwoDecimals(row.CloudCover),
			row.IsDay,
			convert.TwoDecimals(row.ShortwaveRadiation))
		if err != nil {
			return fmt.Errorf("saving weather forecast for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetWeatherForecast(ctx context.Context, dh hours.DateHour) (WeatherForecastRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT date, hour, temperature, relative_humidity, precipitation, rain, snowfall,
			weather_code, weather_description, wind_speed, wind_direction, wind_direction_cardinal,
			surface_pressure, cloud_cover, is_day, shortwave_radiation
		FROM weather_forecast
		WHERE date = ? AND hour = ?`,
		dh.Date, dh.Hour)

	var fc WeatherForecastRow
	err := row.Scan(
		&fc.When.Date,
		&fc.When.Hour,
		&fc.Temperature,
		&fc.RelativeHumidity,
		&fc.Precipitation,
		&fc.Rain,
		&fc.Snowfall,
		&fc.WeatherCode,
		&fc.WeatherDescription,
		&fc.WindSpeed,
		&fc.WindDirection,
		&fc.WindDirectionCardinal,
		&fc.SurfacePressure,
		&fc.CloudCover,
		&fc.IsDay,
		&fc.ShortwaveRadiation)
	if err != nil {
		return WeatherForecastRow{}, fmt.Errorf("scanning weather forecast row: %w", err)
	}

	return fc, nil
}

func (d *Database) PurgeWeatherForecast(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "weather_forecast", retentionDays)
}
