package tibber

import (
	"context"
	"slices"
	"time"
)

type PriceEntry struct {
	Total    float64
	StartsAt time.Time
	Level    string // e.g. NORMAL, CHEAP, EXPENSIVE
}

type priceInfoEntry struct {
	Total    float64 `json:"total"`
	StartsAt string  `json:"startsAt"`
	Level    string  `json:"level"`
}

type priceInfoResponse struct {
	Viewer struct {
		Home struct {
			CurrentSubscription *struct {
				PriceInfo struct {
					Current  *priceInfoEntry  `json:"current"`
					Today    []priceInfoEntry `json:"today"`
					Tomorrow []priceInfoEntry `json:"tomorrow"`
				} `json:"priceInfo"`
			} `json:"currentSubscription"`
		} `json:"home"`
	} `json:"viewer"`
}

// GetPrices fetches the current, today and tomorrow price blocks and
// merges them into one table, deduplicated by hour and sorted ascending.
// On duplicate hours the first occurrence wins, in current, today,
// tomorrow order. Tomorrow's prices are published upstream around midday,
// an empty tomorrow block is a normal state. An account without an active
// subscription yields an empty table, not an error.
func (t *Tibber) GetPrices(ctx context.Context, homeId string) ([]PriceEntry, error) {
	query := `query ($homeId: ID!) {
		viewer {
			home(id: $homeId) {
				currentSubscription {
					priceInfo {
						current { total startsAt level }
						today { total startsAt level }
						tomorrow { total startsAt level }
					}
				}
			}
		}
	}`

	body, err := doQuery[priceInfoResponse](ctx, t, query, map[string]any{"homeId": homeId})
	if err != nil {
		return nil, err
	}

	sub := body.Data.Viewer.Home.CurrentSubscription
	if sub == nil {
		return []PriceEntry{}, nil
	}

	info := sub.PriceInfo
	merged := make([]priceInfoEntry, 0, 1+len(info.Today)+len(info.Tomorrow))
	if info.Current != nil {
		merged = append(merged, *info.Current)
	}
	merged = append(merged, info.Today...)
	merged = append(merged, info.Tomorrow...)

	seen := make(map[int64]bool, len(merged))
	prices := make([]PriceEntry, 0, len(merged))
	for _, entry := range merged {
		startsAt, err := time.Parse(time.RFC3339, entry.StartsAt)
		if err != nil {
			return nil, err
		}
		startsAt = startsAt.UTC()
		if seen[startsAt.Unix()] {
			continue
		}
		seen[startsAt.Unix()] = true
		prices = append(prices, PriceEntry{
			Total:    entry.Total,
			StartsAt: startsAt,
			Level:    entry.Level,
		})
	}

	slices.SortFunc(prices, func(a, b PriceEntry) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	return prices, nil
}
