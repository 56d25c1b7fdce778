package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Config{
		BaseURL:    srv.URL,
		Dataset:    "production",
		APIVersion: "2024-01-01",
	})
}

func groqResult(result any) []byte {
	data, _ := json.Marshal(map[string]any{"result": result})
	return data
}

func TestLiveVehicles(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write(groqResult([]map[string]any{
			{
				"_id":             "v1",
				"listingTitle":    "2006 BMW E46 M3",
				"slug":            map[string]string{"current": "2006-bmw-e46-m3"},
				"chassis":         "E46",
				"mileage":         50000,
				"listingPrice":    45000,
				"status":          "current",
				"inventoryStatus": "Current Inventory",
				"_createdAt":      "2025-01-01T00:00:00Z",
			},
		}))
	})

	vehicles, err := client.LiveVehicles(context.Background())
	if err != nil {
		t.Fatalf("LiveVehicles: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("got %d vehicles", len(vehicles))
	}
	v := vehicles[0]
	if v.Slug != "2006-bmw-e46-m3" {
		t.Errorf("slug not flattened: %q", v.Slug)
	}
	if v.Status != domain.StatusCurrent {
		t.Errorf("status = %q", v.Status)
	}
	if v.CreatedAt.IsZero() {
		t.Error("createdAt not parsed")
	}
	if gotQuery == "" || !containsAll(gotQuery, `_type == "vehicle"`, "isLive == true") {
		t.Errorf("unexpected GROQ query: %s", gotQuery)
	}
}

func TestCurrentVehiclesByChassis(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("$models") != `["E46","E90"]` {
			t.Errorf("$models param = %q", q.Get("$models"))
		}
		if !containsAll(q.Get("query"), "chassis in $models", "Current Inventory", "order(_createdAt desc)", "[0...4]") {
			t.Errorf("unexpected GROQ query: %s", q.Get("query"))
		}
		_, _ = w.Write(groqResult([]map[string]any{}))
	})

	_, err := client.CurrentVehiclesByChassis(context.Background(), []string{"E46", "E90"}, 4)
	if err != nil {
		t.Fatalf("CurrentVehiclesByChassis: %v", err)
	}
}

func TestVehicleBySlug_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": null}`))
	})

	_, err := client.VehicleBySlug(context.Background(), "no-such-car")
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LiveVehicles(context.Background())
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
