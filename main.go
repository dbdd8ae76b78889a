package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angas/homeenergy-go/config"
	"github.com/angas/homeenergy-go/database"
	"github.com/angas/homeenergy-go/logging"
	"github.com/angas/homeenergy-go/openmeteo"
	"github.com/angas/homeenergy-go/task"
	"github.com/angas/homeenergy-go/tibber"
	"github.com/fsnotify/fsnotify"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	runOnce := flag.Bool("once", false, "run every fetch task once and exit")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("homeenergy is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	tb := tibber.New(cnfg.Tibber.ApiUrl, cnfg.Tibber.ApiToken)
	homeId := resolveHomeId(ctx, logger, tb, cnfg)

	om := openmeteo.New(
		cnfg.Weather.Latitude,
		cnfg.Weather.Longitude,
		cnfg.Weather.Timezone,
		cnfg.Weather.IsImperial())

	tasks := task.NewTasks(db, tb, homeId, om, cnfg)

	if *runOnce {
		tasks.RunOnce()
		return
	}

	config.Watch(func(e fsnotify.Event) {
		logger.Info("config file changed, restart to apply", slog.String("file", e.Name))
	})

	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("main context done")
	case sig := <-sigCh:
		logger.Info("received signal", slog.Any("signal", sig))
		cancel()
	}
}

// resolveHomeId prefers the configured home id and falls back to the
// first home on the account. Failure to resolve disables the energy
// tasks but keeps the weather tasks running.
func resolveHomeId(ctx context.Context, logger *slog.Logger, tb *tibber.Tibber, cnfg *config.AppConfig) string {
	if cnfg.Tibber.HomeId != "" {
		return cnfg.Tibber.HomeId
	}

	home, err := tb.GetHome(ctx)
	if err != nil {
		logger.Error("failed to resolve home from account", slog.Any("error", err))
		return ""
	}

	logger.Info("resolved home from account",
		slog.String("homeId", home.Id),
		slog.String("address", home.Address1),
		slog.String("city", home.City))
	return home.Id
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	time.Sleep(2 * time.Second)
	os.Exit(1)
}
