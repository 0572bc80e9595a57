package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
)

func TestFetchTodayDecodesReadings(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"plantId": "plant-7",
			"readings": [
				{"timestamp": "2026-08-31T10:00:00Z", "meterId": "m-1", "roofId": "r-1", "value": 12.5, "cumulative": 1040.25},
				{"timestamp": "2026-08-31T10:15:00Z", "meterId": "m-1", "roofId": "r-1", "value": 13.75, "cumulative": 1054.0}
			]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), config.TelemetryConfig{
		BaseURL: srv.URL,
		APIKey:  "secret",
		PlantID: "plant-7",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	readings, err := client.FetchToday(context.Background())
	if err != nil {
		t.Fatalf("FetchToday: %v", err)
	}

	if gotPath != "/v1/plants/plant-7/readings/today" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if !readings[0].Timestamp.Equal(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %s", readings[0].Timestamp)
	}
	if readings[0].Value.String() != "12.5" {
		t.Fatalf("unexpected value %s", readings[0].Value)
	}
	if readings[1].PlantID != "plant-7" {
		t.Fatal("expected plant id backfilled from client scope")
	}
}

func TestFetchTodayNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), config.TelemetryConfig{BaseURL: srv.URL, PlantID: "plant-7"}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.FetchToday(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(context.Background(), config.TelemetryConfig{PlantID: "p"}, nil); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := NewClient(context.Background(), config.TelemetryConfig{BaseURL: "http://x"}, nil); err == nil {
		t.Fatal("expected error for missing plant id")
	}
}
