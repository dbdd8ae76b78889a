package task

import (
	"context"
	"log/slog"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/openmeteo"
	"github.com/angas/homeenergy-go/tibber"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron                *cron.Cron
	cnfg                *config.AppConfig
	homeId              string
	EnergyPriceTask     func()
	ConsumptionTask     func()
	LiveMeasurementTask func()
	WeatherForecastTask func()
	CurrentWeatherTask  func()
	MaintenanceTask     func()
}

func NewTasks(
	db *database.Database,
	tb *tibber.Tibber,
	homeId string,
	om *openmeteo.OpenMeteo,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	outDir := cnfg.Output.GetDir()
	return &Tasks{
		cron:                cron.New(),
		cnfg:                cnfg,
		homeId:              homeId,
		EnergyPriceTask:     NewEnergyPriceTask(logger.With(slog.String("task", "energy_price")), db, tb, homeId, outDir),
		ConsumptionTask:     NewConsumptionTask(logger.With(slog.String("task", "consumption")), db, tb, homeId, cnfg.Tibber.GetConsumptionHours(), outDir),
		LiveMeasurementTask: NewLiveMeasurementTask(logger.With(slog.String("task", "live_measurement")), db, tb, homeId),
		WeatherForecastTask: NewWeatherForecastTask(logger.With(slog.String("task", "weather_forecast")), db, om, cnfg.Weather, outDir),
		CurrentWeatherTask:  NewCurrentWeatherTask(logger.With(slog.String("task", "current_weather")), db, om, outDir),
		MaintenanceTask:     NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	if t.homeId == "" {
		slog.Warn("no home id resolved, energy tasks are not scheduled")
	} else {
		t.mustAdd(cronSpec(t.cnfg.Tibber.PricesRunAt, "10 * * * *"), t.EnergyPriceTask)
		t.mustAdd(cronSpec(t.cnfg.Tibber.ConsumptionRunAt, "15 1 * * *"), t.ConsumptionTask)
		t.mustAdd(cronSpec(t.cnfg.Tibber.LiveRunAt, "@hourly"), t.LiveMeasurementTask)
	}
	t.mustAdd(cronSpec(t.cnfg.Weather.RunAt, "20 * * * *"), t.WeatherForecastTask)
	t.mustAdd(cronSpec("", "@hourly"), t.CurrentWeatherTask)
	t.mustAdd(cronSpec("", "30 2 * * *"), t.MaintenanceTask)
	t.cron.Start()
}

// RunOnce runs every fetch task back to back and returns, for one-shot
// invocations. Energy tasks are skipped when no home is resolved.
func (t *Tasks) RunOnce() {
	if t.homeId == "" {
		slog.Warn("no home id resolved, skipping energy tasks")
	} else {
		t.EnergyPriceTask()
		t.ConsumptionTask()
		t.LiveMeasurementTask()
	}
	t.CurrentWeatherTask()
	t.WeatherForecastTask()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}

func (t *Tasks) mustAdd(spec string, cmd func()) {
	if _, err := t.cron.AddFunc(spec, cmd); err != nil {
		panic(err)
	}
}

func cronSpec(spec, def string) string {
	if spec == "" {
		return def
	}
	return spec
}
