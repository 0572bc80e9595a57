package energy

import (
	"context"

	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/de-energymain/buy-electricity-sub000/pkg/telemetry"
)

const defaultLatestLimit = 8

// Fetcher pulls the current-day dataset from the monitoring portal.
type Fetcher interface {
	FetchToday(ctx context.Context) ([]telemetry.Reading, error)
	PlantID() string
}

// Service ingests portal telemetry and serves the recent production window.
type Service interface {
	// Ingest pulls today's readings and stores the ones not seen before.
	// It returns how many were fetched and how many were newly inserted.
	Ingest(ctx context.Context) (fetched int, inserted int64, err error)
	Latest(ctx context.Context) ([]models.EnergyReading, error)
}

type service struct {
	repo    Repository
	fetcher Fetcher
	plantID string
	limit   int
}

// NewService wires the energy service against the configured plant.
func NewService(repo Repository, fetcher Fetcher, cfg config.TelemetryConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "energy repository required")
	}
	if fetcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "telemetry fetcher required")
	}
	limit := cfg.LatestLimit
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	return &service{
		repo:    repo,
		fetcher: fetcher,
		plantID: fetcher.PlantID(),
		limit:   limit,
	}, nil
}

func (s *service) Ingest(ctx context.Context) (int, int64, error) {
	readings, err := s.fetcher.FetchToday(ctx)
	if err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch plant telemetry")
	}
	if len(readings) == 0 {
		return 0, 0, nil
	}

	rows := make([]models.EnergyReading, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, models.EnergyReading{
			MeasuredAt:    r.Timestamp.UTC(),
			MeterID:       r.MeterID,
			PlantID:       r.PlantID,
			RoofID:        r.RoofID,
			ValueKWH:      r.Value,
			CumulativeKWH: r.Cumulative,
		})
	}

	inserted, err := s.repo.InsertMissing(ctx, rows)
	if err != nil {
		return len(readings), 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store plant telemetry")
	}
	return len(readings), inserted, nil
}

func (s *service) Latest(ctx context.Context) ([]models.EnergyReading, error) {
	readings, err := s.repo.Latest(ctx, s.plantID, s.limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list latest readings")
	}
	return readings, nil
}
