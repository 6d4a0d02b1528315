package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/lunchtray/internal/config"
	"github.com/five82/lunchtray/internal/linq"
	"github.com/five82/lunchtray/internal/menu"
)

const lunchJSON = `{
  "FamilyMenuSessions": [{
    "ServingSession": "Lunch",
    "MenuPlans": [{
      "MenuPlanName": "K-12 Lunch",
      "Days": [{
        "Date": "10/21/2025",
        "MenuMeals": [{
          "MenuMealName": "Taco Tuesday",
          "RecipeCategories": [{"CategoryName": "Main Entrée", "Recipes": [{"RecipeName": "Tacos"}]}]
        }]
      }]
    }]
  }]
}`

// menuServer serves lunchJSON until fail is set, then answers 503.
func menuServer(t *testing.T, fail *atomic.Bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(lunchJSON))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.DistrictID = "district"
	cfg.BuildingID = "building"
	cfg.APIBaseURL = baseURL
	cfg.CachePath = filepath.Join(t.TempDir(), "snapshot.db")
	return cfg
}

func TestOpen_RequiresIDs(t *testing.T) {
	cfg := config.Defaults()
	if _, err := Open(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("Open returned nil error for config without ids")
	}
}

func TestRuntime_CurrentFetchesAndCaches(t *testing.T) {
	var fail atomic.Bool
	server := menuServer(t, &fail)
	cfg := testConfig(t, server.URL)

	rt, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap, status, err := rt.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if status.FromCache {
		t.Fatalf("FromCache = true after a successful fetch")
	}
	if _, ok := snap.Menu(menu.Lunch, oct21); !ok {
		t.Fatalf("lunch menu for %v missing", oct21)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A second runtime on the same cache survives an api outage.
	fail.Store(true)
	rt, err = Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open (second): %v", err)
	}
	defer rt.Close()

	if s := rt.Store.Snapshot(); !s.HasMenu || !s.FromCache {
		t.Fatalf("store not seeded from cache: HasMenu=%v FromCache=%v", s.HasMenu, s.FromCache)
	}
	snap, status, err = rt.Current(context.Background())
	if err != nil {
		t.Fatalf("Current with cached menu: %v", err)
	}
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", status.ConsecutiveFailures)
	}
	day, ok := snap.Menu(menu.Lunch, oct21)
	if !ok || day.Theme != "Taco Tuesday" {
		t.Fatalf("cached day = %#v, %v", day, ok)
	}
}

func TestRuntime_CurrentWithoutMenu(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := menuServer(t, &fail)
	cfg := testConfig(t, server.URL)
	cfg.CachePath = ""

	rt, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rt.Close()

	_, _, err = rt.Current(context.Background())
	if !errors.Is(err, ErrUpdateFailed) {
		t.Fatalf("Current error = %v, want ErrUpdateFailed", err)
	}
	if !errors.Is(err, linq.ErrAPI) {
		t.Fatalf("Current error = %v, want wrapped ErrAPI", err)
	}
}
