package tibber

import (
	"context"
	"slices"
	"time"
)

type ConsumptionEntry struct {
	From         time.Time
	To           time.Time
	Consumption  float64 // kWh consumed during the interval
	UnitPrice    float64 // Price ex. VAT
	UnitPriceVAT float64 // VAT component
	TotalCost    float64
	Currency     string
	// UnitPrice + UnitPriceVAT, reconstructed here since the API
	// doesn't return the total unit price directly
	TotalPrice float64
}

type consumptionResponse struct {
	Viewer struct {
		Home struct {
			Consumption *struct {
				Nodes []struct {
					From         string   `json:"from"`
					To           string   `json:"to"`
					Consumption  *float64 `json:"consumption"`
					UnitPrice    float64  `json:"unitPrice"`
					UnitPriceVAT float64  `json:"unitPriceVAT"`
					TotalCost    float64  `json:"totalCost"`
					Currency     string   `json:"currency"`
				} `json:"nodes"`
			} `json:"consumption"`
		} `json:"home"`
	} `json:"viewer"`
}

// GetConsumption fetches hourly consumption history for the last `hours`
// hours, sorted ascending by interval start. A newly connected meter has
// no history, which yields an empty table, not an error. Hours the meter
// didn't report (null consumption) are dropped.
func (t *Tibber) GetConsumption(ctx context.Context, homeId string, hours int) ([]ConsumptionEntry, error) {
	query := `query ($homeId: ID!, $last: Int!) {
		viewer {
			home(id: $homeId) {
				consumption(resolution: HOURLY, last: $last) {
					nodes {
						from
						to
						consumption
						unitPrice
						unitPriceVAT
						totalCost
						currency
					}
				}
			}
		}
	}`

	body, err := doQuery[consumptionResponse](ctx, t, query, map[string]any{"homeId": homeId, "last": hours})
	if err != nil {
		return nil, err
	}

	cons := body.Data.Viewer.Home.Consumption
	if cons == nil {
		return []ConsumptionEntry{}, nil
	}

	entries := make([]ConsumptionEntry, 0, len(cons.Nodes))
	for _, node := range cons.Nodes {
		if node.Consumption == nil {
			continue
		}
		from, err := time.Parse(time.RFC3339, node.From)
		if err != nil {
			return nil, err
		}
		to, err := time.Parse(time.RFC3339, node.To)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ConsumptionEntry{
			From:         from.UTC(),
			To:           to.UTC(),
			Consumption:  *node.Consumption,
			UnitPrice:    node.UnitPrice,
			UnitPriceVAT: node.UnitPriceVAT,
			TotalCost:    node.TotalCost,
			Currency:     node.Currency,
			TotalPrice:   node.UnitPrice + node.UnitPriceVAT,
		})
	}

	slices.SortFunc(entries, func(a, b ConsumptionEntry) int {
		return a.From.Compare(b.From)
	})

	return entries, nil
}
