package main

import (
	"context"
	"fmt"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/tibber"
)

func main() {
	cnfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	tb := tibber.New(cnfg.Tibber.ApiUrl, cnfg.Tibber.ApiToken)

	ctx := context.Background()
	homeId := cnfg.Tibber.HomeId
	if homeId == "" {
		home, err := tb.GetHome(ctx)
		if err != nil {
			panic(err)
		}
		homeId = home.Id
	}

	prices, err := tb.GetPrices(ctx, homeId)
	if err != nil {
		panic(err)
	}

	for _, p := range prices {
		fmt.Printf("Date: %s, Hour: %d, Total: %f, Level: %s\n",
			p.StartsAt.Format("2006-01-02"), p.StartsAt.Hour(), p.Total, p.Level)
	}
}
