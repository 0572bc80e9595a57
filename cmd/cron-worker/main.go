package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/de-energymain/buy-electricity-sub000/internal/cron"
	"github.com/de-energymain/buy-electricity-sub000/internal/energy"
	"github.com/de-energymain/buy-electricity-sub000/internal/users"
	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
	"github.com/de-energymain/buy-electricity-sub000/pkg/metrics"
	"github.com/de-energymain/buy-electricity-sub000/pkg/migrate"
	"github.com/de-energymain/buy-electricity-sub000/pkg/redis"
	"github.com/de-energymain/buy-electricity-sub000/pkg/telemetry"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())

	portalClient, err := telemetry.NewClient(context.Background(), cfg.Telemetry, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create telemetry client", err)
		os.Exit(1)
	}

	energyService, err := energy.NewService(energy.NewRepository(dbClient.DB()), portalClient, cfg.Telemetry)
	if err != nil {
		logg.Error(context.Background(), "failed to create energy service", err)
		os.Exit(1)
	}

	yieldJob, err := cron.NewYieldAccrualJob(cron.YieldAccrualJobParams{
		Logger:       logg,
		Users:        userRepo,
		ExchangeRate: cfg.Cron.ExchangeRate,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create yield accrual job", err)
		os.Exit(1)
	}

	ingestionJob, err := cron.NewEnergyIngestionJob(cron.EnergyIngestionJobParams{
		Logger: logg,
		Energy: energyService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create energy ingestion job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker:"+cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(yieldJob, ingestionJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Cron.Interval.String(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
