package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
)

type testEnergyService struct {
	latestFn func(ctx context.Context) ([]models.EnergyReading, error)
}

func (s *testEnergyService) Ingest(ctx context.Context) (int, int64, error) {
	return 0, 0, nil
}

func (s *testEnergyService) Latest(ctx context.Context) ([]models.EnergyReading, error) {
	if s.latestFn != nil {
		return s.latestFn(ctx)
	}
	return nil, nil
}

func TestLatestEnergyReturnsReadings(t *testing.T) {
	svc := &testEnergyService{
		latestFn: func(ctx context.Context) ([]models.EnergyReading, error) {
			return []models.EnergyReading{
				{MeasuredAt: time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC), PlantID: "plant-1"},
				{MeasuredAt: time.Date(2026, 8, 30, 6, 15, 0, 0, time.UTC), PlantID: "plant-1"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/energy/latest", nil)
	resp := httptest.NewRecorder()
	LatestEnergy(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []models.EnergyReading `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 readings got %d", len(envelope.Data))
	}
}

func TestLatestEnergyDependencyError(t *testing.T) {
	svc := &testEnergyService{
		latestFn: func(ctx context.Context) ([]models.EnergyReading, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "list latest readings")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/energy/latest", nil)
	resp := httptest.NewRecorder()
	LatestEnergy(svc, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
