package tibber

import (
	"context"
	"errors"
)

// ErrNoHome means the token is valid but no home is linked to the account.
var ErrNoHome = errors.New("no home on this tibber account")

type Home struct {
	Id         string
	Address1   string
	PostalCode string
	City       string
	Country    string
}

type homesResponse struct {
	Viewer struct {
		Homes []struct {
			Id      string `json:"id"`
			Address struct {
				Address1   string `json:"address1"`
				PostalCode string `json:"postalCode"`
				City       string `json:"city"`
				Country    string `json:"country"`
			} `json:"address"`
		} `json:"homes"`
	} `json:"viewer"`
}

// GetHome returns the first home on the account. Multi-home accounts are
// not supported, there is no selection policy beyond first-in-list.
func (t *Tibber) GetHome(ctx context.Context) (Home, error) {
	query := `{
		viewer {
			homes {
				id
				address {
					address1
					postalCode
					city
					country
				}
			}
		}
	}`

	body, err := doQuery[homesResponse](ctx, t, query, nil)
	if err != nil {
		return Home{}, err
	}

	homes := body.Data.Viewer.Homes
	if len(homes) == 0 {
		return Home{}, ErrNoHome
	}

	first := homes[0]
	return Home{
		Id:         first.Id,
		Address1:   first.Address.Address1,
		PostalCode: first.Address.PostalCode,
		City:       first.Address.City,
		Country:    first.Address.Country,
	}, nil
}
