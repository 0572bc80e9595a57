package cron

import (
	"context"
	"fmt"

	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

// EnergyIngestionJobParams configure the telemetry ingestion job.
type EnergyIngestionJobParams struct {
	Logger *logger.Logger
	Energy energyIngestor
}

type energyIngestor interface {
	Ingest(ctx context.Context) (fetched int, inserted int64, err error)
}

// NewEnergyIngestionJob constructs the telemetry ingestion cron job.
func NewEnergyIngestionJob(params EnergyIngestionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Energy == nil {
		return nil, fmt.Errorf("energy service required")
	}
	return &energyIngestionJob{
		logg:   params.Logger,
		energy: params.Energy,
	}, nil
}

type energyIngestionJob struct {
	logg   *logger.Logger
	energy energyIngestor
}

func (j *energyIngestionJob) Name() string { return "energy-ingestion" }

// Run pulls the current-day dataset and stores the readings not seen before.
// A failed fetch aborts the cycle; the next cycle refetches the whole day, so
// nothing is lost.
func (j *energyIngestionJob) Run(ctx context.Context) error {
	fetched, inserted, err := j.energy.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingest telemetry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"fetched":  fetched,
		"inserted": inserted,
	})
	j.logg.Info(logCtx, "telemetry ingestion cycle complete")
	return nil
}
