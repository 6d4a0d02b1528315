package linq

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const sampleFeed = `{
  "FamilyMenuSessions": [
    {
      "ServingSession": "Breakfast",
      "MenuPlans": [
        {"MenuPlanName": "K-12 Breakfast", "Days": []},
        {"MenuPlanName": "Pre-K Breakfast", "Days": []}
      ]
    },
    {
      "ServingSessionKey": "Lunch",
      "MenuPlans": [
        {"MenuPlanName": "K-12 Breakfast", "Days": []},
        {"MenuPlanName": "", "Days": []},
        {"MenuPlanName": "Elementary Lunch", "Days": []}
      ]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient("district-1", "building-2", WithBaseURL(server.URL+"/api"), WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.now = func() time.Time { return time.Date(2025, time.October, 5, 8, 0, 0, 0, time.UTC) }
	return c
}

func TestNewClient_RequiresIDs(t *testing.T) {
	if _, err := NewClient(" ", "b"); err == nil {
		t.Fatalf("NewClient returned nil error, want error for empty district")
	}
	if _, err := NewClient("d", ""); err == nil {
		t.Fatalf("NewClient returned nil error, want error for empty building")
	}
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL+"/" {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("example.com/menus?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/menus/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleFeed))
	})

	start := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)
	feed, err := c.Fetch(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(feed.Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(feed.Sessions))
	}
	if gotPath != "/api/FamilyMenu" {
		t.Fatalf("path = %q, want /api/FamilyMenu", gotPath)
	}
	if gotQuery.Get("districtId") != "district-1" ||
		gotQuery.Get("buildingId") != "building-2" ||
		gotQuery.Get("startDate") != "3-4-2025" ||
		gotQuery.Get("endDate") != "4-12-2025" {
		t.Fatalf("query = %v, want ids and M-D-YYYY dates", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "lunchtray/") {
		t.Fatalf("User-Agent = %q, want lunchtray/*", gotUserAgent)
	}
}

func TestClient_FetchDefaultsDateRange(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	})

	if _, err := c.Fetch(context.Background(), time.Time{}, time.Time{}); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotQuery.Get("startDate") != "10-5-2025" || gotQuery.Get("endDate") != "11-4-2025" {
		t.Fatalf("dates = %s..%s, want 10-5-2025..11-4-2025", gotQuery.Get("startDate"), gotQuery.Get("endDate"))
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	status := http.StatusInternalServerError
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		_, _ = w.Write([]byte("{not-json"))
	})

	_, err := c.Fetch(context.Background(), time.Time{}, time.Time{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindHTTP || apiErr.StatusCode != 500 {
		t.Fatalf("Fetch error = %v, want http APIError with status 500", err)
	}
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("errors.Is(err, ErrAPI) = false, want true")
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error = %q, want status in message", err.Error())
	}

	status = http.StatusOK
	_, err = c.Fetch(context.Background(), time.Time{}, time.Time{})
	if !errors.As(err, &apiErr) || apiErr.Kind != KindDecode {
		t.Fatalf("Fetch error = %v, want decode APIError", err)
	}
}

func TestClient_TransportErrorIsAPIError(t *testing.T) {
	c, err := NewClient("d", "b", WithBaseURL("http://127.0.0.1:1"), WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Fetch(context.Background(), time.Time{}, time.Time{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("Fetch error = %v, want transport APIError", err)
	}
}

func TestClient_TimeoutIsTransportError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Fetch(ctx, time.Time{}, time.Time{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("Fetch error = %v, want transport APIError", err)
	}
	if !apiErr.Timeout() {
		t.Fatalf("Timeout() = false, want true for %v", err)
	}
}

func TestClient_Validate(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	fail := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if fail {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"FamilyMenuSessions": []}`))
	})

	if !c.Validate(context.Background()) {
		t.Fatalf("Validate = false, want true")
	}
	if gotQuery.Get("startDate") != "10-5-2025" || gotQuery.Get("endDate") != "10-6-2025" {
		t.Fatalf("validate window = %s..%s, want one day", gotQuery.Get("startDate"), gotQuery.Get("endDate"))
	}

	fail = true
	if c.Validate(context.Background()) {
		t.Fatalf("Validate = true, want false on 404")
	}
}

func TestClient_MenuPlansSortedUnique(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	})

	plans, err := c.MenuPlans(context.Background())
	if err != nil {
		t.Fatalf("MenuPlans returned error: %v", err)
	}
	want := []string{"Elementary Lunch", "K-12 Breakfast", "Pre-K Breakfast"}
	if strings.Join(plans, "|") != strings.Join(want, "|") {
		t.Fatalf("plans = %v, want %v", plans, want)
	}

	defaults := DefaultPlanSelection(plans)
	if strings.Join(defaults, "|") != "Elementary Lunch|K-12 Breakfast" {
		t.Fatalf("DefaultPlanSelection = %v, want pre-k excluded", defaults)
	}
}
