package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/homeenergy-go/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfigTibber struct {
	// GraphQL endpoint, e.g. https://api.tibber.com/v1-beta/gql
	ApiUrl   string `mapstructure:"api_url"`
	ApiToken string `mapstructure:"api_token"`
	// Optional override; when empty the home is resolved from the account
	HomeId string `mapstructure:"home_id"`
	// How many hours of consumption history to fetch, default: 720 (30 days)
	ConsumptionHours *int   `mapstructure:"consumption_hours"`
	PricesRunAt      string `mapstructure:"prices_run_at"`
	ConsumptionRunAt string `mapstructure:"consumption_run_at"`
	LiveRunAt        string `mapstructure:"live_run_at"`
}

func (t AppConfigTibber) GetConsumptionHours() int {
	if t.ConsumptionHours == nil {
		return 720
	}
	return *t.ConsumptionHours
}

type AppConfigWeather struct {
	Latitude  float64 // Your approx latitude position (WGS84)
	Longitude float64 // Your approx longitude position (WGS84)
	Timezone  string  // IANA name passed to the forecast API, e.g. Europe/Amsterdam
	// "metric" (default) or "imperial"; applies to temperature,
	// wind speed and precipitation together
	Units         string `mapstructure:"units"`
	ForecastHours *int   `mapstructure:"forecast_hours"`
	PastHours     int    `mapstructure:"past_hours"`
	RunAt         string `mapstructure:"run_at"`
}

func (w AppConfigWeather) GetForecastHours() int {
	if w.ForecastHours == nil {
		return 72
	}
	return *w.ForecastHours
}

func (w AppConfigWeather) IsImperial() bool {
	return strings.EqualFold(w.Units, "imperial")
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 90
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigOutput struct {
	// Directory for CSV snapshots, default: "data/raw"
	Dir *string `mapstructure:"dir"`
}

func (o AppConfigOutput) GetDir() string {
	if o.Dir == nil {
		return "data/raw"
	}
	return *o.Dir
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Tibber   AppConfigTibber
	Weather  AppConfigWeather
	Database AppConfigDatabase
	Output   AppConfigOutput
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	// Credentials usually live in a .env file next to the binary,
	// missing file is fine
	_ = godotenv.Load()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	// Default location is The Hague
	if c.Weather.Latitude == 0 && c.Weather.Longitude == 0 {
		c.Weather.Latitude = 52.0766
		c.Weather.Longitude = 4.2986
	}
	if c.Weather.Timezone == "" {
		c.Weather.Timezone = "Europe/Amsterdam"
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// validate rejects a config that would fail on the first authenticated
// call anyway, before any network traffic happens.
func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.Tibber.ApiToken) == "" {
		return fmt.Errorf("tibber.api_token is not set")
	}
	if strings.TrimSpace(c.Tibber.ApiUrl) == "" {
		return fmt.Errorf("tibber.api_url is not set")
	}
	return nil
}
