package task

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/angas/homeenergy-go/export"
	"github.com/angas/homeenergy-go/tibber"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnergyPriceTaskDegradesOnApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"invalid token"}]}`))
	}))
	defer srv.Close()

	outDir := t.TempDir()
	tb := tibber.New(srv.URL, "bad-token")

	// Fetch fails before any archiving or export happens, so the task
	// must return quietly without touching the database or disk.
	NewEnergyPriceTask(discardLogger(), nil, tb, "home-1", outDir)()

	if _, err := os.Stat(filepath.Join(outDir, export.EnergyPricesFile)); !os.IsNotExist(err) {
		t.Errorf("expected no snapshot after api error, stat err: %v", err)
	}
}

func TestEnergyPriceTaskSkipsEmptyTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"viewer":{"home":{"currentSubscription":{"priceInfo":{
			"current":null,"today":[],"tomorrow":[]}}}}}}`))
	}))
	defer srv.Close()

	outDir := t.TempDir()
	tb := tibber.New(srv.URL, "token")

	NewEnergyPriceTask(discardLogger(), nil, tb, "home-1", outDir)()

	if _, err := os.Stat(filepath.Join(outDir, export.EnergyPricesFile)); !os.IsNotExist(err) {
		t.Errorf("expected no snapshot for empty price table, stat err: %v", err)
	}
}

func TestConsumptionTaskDegradesOnApiError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	tb := tibber.New(srv.URL, "token")

	NewConsumptionTask(discardLogger(), nil, tb, "home-1", 720, outDir)()

	if _, err := os.Stat(filepath.Join(outDir, export.ConsumptionFile)); !os.IsNotExist(err) {
		t.Errorf("expected no snapshot after api error, stat err: %v", err)
	}
}

func TestCronSpecDefault(t *testing.T) {
	if got := cronSpec("", "@hourly"); got != "@hourly" {
		t.Errorf("empty spec should fall back to default, got %q", got)
	}
	if got := cronSpec("5 * * * *", "@hourly"); got != "5 * * * *" {
		t.Errorf("explicit spec should win, got %q", got)
	}
}
