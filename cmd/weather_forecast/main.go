package main

import (
	"context"
	"fmt"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/openmeteo"
)

func main() {
	cnfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	om := openmeteo.New(
		cnfg.Weather.Latitude,
		cnfg.Weather.Longitude,
		cnfg.Weather.Timezone,
		cnfg.Weather.IsImperial())

	fc, err := om.GetHourlyForecast(context.Background(), cnfg.Weather.GetForecastHours(), cnfg.Weather.PastHours)
	if err != nil {
		panic(err)
	}

	for _, h := range fc {
		fmt.Printf("Time: %s, Temp: %.1f, Wind: %.1f %s, %s\n",
			h.Timestamp.Format("2006-01-02 15:04"), h.Temperature,
			h.WindSpeed, h.WindDirectionCardinal, h.WeatherDescription)
	}
}
