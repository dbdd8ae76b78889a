package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYaml = `
tibber:
  api_url: https://api.tibber.com/v1-beta/gql
  api_token: test-token
weather:
  latitude: 52.0766
  longitude: 4.2986
  timezone: Europe/Amsterdam
database:
  path: /tmp/homeenergy-test.db
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := Load(writeTestConfig(t, testYaml))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	t.Run("Tibber", func(t *testing.T) {
		if config.Tibber.ApiToken != "test-token" {
			t.Errorf("expected api token %q, got %q", "test-token", config.Tibber.ApiToken)
		}
		if config.Tibber.ApiUrl != "https://api.tibber.com/v1-beta/gql" {
			t.Errorf("unexpected api url %q", config.Tibber.ApiUrl)
		}
		if config.Tibber.GetConsumptionHours() != 720 {
			t.Errorf("expected default consumption hours 720, got %d", config.Tibber.GetConsumptionHours())
		}
	})

	t.Run("Weather", func(t *testing.T) {
		if config.Weather.Latitude != 52.0766 {
			t.Errorf("expected latitude 52.0766, got %f", config.Weather.Latitude)
		}
		if config.Weather.Longitude != 4.2986 {
			t.Errorf("expected longitude 4.2986, got %f", config.Weather.Longitude)
		}
		if config.Weather.IsImperial() {
			t.Errorf("expected metric units by default")
		}
		if config.Weather.GetForecastHours() != 72 {
			t.Errorf("expected default forecast hours 72, got %d", config.Weather.GetForecastHours())
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		if config.Output.GetDir() != "data/raw" {
			t.Errorf("expected default output dir data/raw, got %q", config.Output.GetDir())
		}
		if config.Database.GetDataRetentionDays() != 90 {
			t.Errorf("expected default data retention 90, got %d", config.Database.GetDataRetentionDays())
		}
		if config.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("expected default db max entries 10000, got %d", config.Logging.GetDbMaxEntries())
		}
	})
}

func TestLoadConfigImperialUnits(t *testing.T) {
	yaml := `
tibber:
  api_url: https://api.tibber.com/v1-beta/gql
  api_token: test-token
weather:
  latitude: 52.0766
  longitude: 4.2986
  units: imperial
`
	config, err := Load(writeTestConfig(t, yaml))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !config.Weather.IsImperial() {
		t.Errorf("expected imperial units")
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	yaml := `
tibber:
  api_url: https://api.tibber.com/v1-beta/gql
  api_token: test-token
`
	config, err := Load(writeTestConfig(t, yaml))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if config.Weather.Latitude != 52.0766 || config.Weather.Longitude != 4.2986 {
		t.Errorf("expected The Hague as default location, got %f/%f",
			config.Weather.Latitude, config.Weather.Longitude)
	}
	if config.Weather.Timezone != "Europe/Amsterdam" {
		t.Errorf("expected default timezone Europe/Amsterdam, got %q", config.Weather.Timezone)
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	yaml := `
tibber:
  api_url: https://api.tibber.com/v1-beta/gql
weather:
  latitude: 52.0766
  longitude: 4.2986
`
	if _, err := Load(writeTestConfig(t, yaml)); err == nil {
		t.Fatalf("expected an error for a missing api token")
	}
}
