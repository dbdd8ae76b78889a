package tibber

import (
	"context"
	"errors"
	"time"

	"github.com/angas/homeenergy-go/types/maybe"
)

// ErrNoLiveMeasurement means the backend answered but had no live data,
// typically an account without a Tibber Pulse device.
var ErrNoLiveMeasurement = errors.New("no live measurement available")

type LiveMeasurement struct {
	Timestamp              time.Time
	Power                  float64 // Current power draw in W
	AccumulatedConsumption float64 // kWh since midnight
	AccumulatedCost        float64
	Currency               string
	MinPower               float64
	AveragePower           float64
	MaxPower               float64
	// Net production in W, null for homes without solar
	PowerProduction maybe.Maybe[float64]
}

type liveMeasurementResponse struct {
	LiveMeasurement *struct {
		Timestamp              string               `json:"timestamp"`
		Power                  float64              `json:"power"`
		AccumulatedConsumption float64              `json:"accumulatedConsumption"`
		AccumulatedCost        float64              `json:"accumulatedCost"`
		Currency               string               `json:"currency"`
		MinPower               float64              `json:"minPower"`
		AveragePower           float64              `json:"averagePower"`
		MaxPower               float64              `json:"maxPower"`
		PowerProduction        maybe.Maybe[float64] `json:"powerProduction"`
	} `json:"liveMeasurement"`
}

// GetLiveMeasurement issues the live measurement subscription query as a
// single one-shot POST and returns the snapshot it yields. Continuous
// streaming would need a websocket subscription instead.
func (t *Tibber) GetLiveMeasurement(ctx context.Context, homeId string) (*LiveMeasurement, error) {
	query := `subscription ($homeId: ID!) {
		liveMeasurement(homeId: $homeId) {
			timestamp
			power
			accumulatedConsumption
			accumulatedCost
			currency
			minPower
			averagePower
			maxPower
			powerProduction
		}
	}`

	body, err := doQuery[liveMeasurementResponse](ctx, t, query, map[string]any{"homeId": homeId})
	if err != nil {
		return nil, err
	}

	lm := body.Data.LiveMeasurement
	if lm == nil {
		return nil, ErrNoLiveMeasurement
	}

	timestamp, err := time.Parse(time.RFC3339, lm.Timestamp)
	if err != nil {
		return nil, err
	}

	return &LiveMeasurement{
		Timestamp:              timestamp.UTC(),
		Power:                  lm.Power,
		AccumulatedConsumption: lm.AccumulatedConsumption,
		AccumulatedCost:        lm.AccumulatedCost,
		Currency:               lm.Currency,
		MinPower:               lm.MinPower,
		AveragePower:           lm.AveragePower,
		MaxPower:               lm.MaxPower,
		PowerProduction:        lm.PowerProduction,
	}, nil
}
