package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

type fakeIngestor struct {
	fetched  int
	inserted int64
	err      error
	calls    int
}

func (f *fakeIngestor) Ingest(ctx context.Context) (int, int64, error) {
	f.calls++
	return f.fetched, f.inserted, f.err
}

func TestEnergyIngestionJobRun(t *testing.T) {
	ingestor := &fakeIngestor{fetched: 12, inserted: 3}
	job, err := NewEnergyIngestionJob(EnergyIngestionJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test"}),
		Energy: ingestor,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "energy-ingestion" {
		t.Fatalf("unexpected name %s", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ingestor.calls != 1 {
		t.Fatalf("expected one ingest call, got %d", ingestor.calls)
	}
}

func TestEnergyIngestionJobFetchFailureAbortsCycle(t *testing.T) {
	job, err := NewEnergyIngestionJob(EnergyIngestionJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test"}),
		Energy: &fakeIngestor{err: errors.New("portal unreachable")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected run to fail when the fetch fails")
	}
}
