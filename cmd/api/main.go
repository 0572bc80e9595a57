package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/de-energymain/buy-electricity-sub000/api/routes"
	"github.com/de-energymain/buy-electricity-sub000/internal/energy"
	"github.com/de-energymain/buy-electricity-sub000/internal/purchases"
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
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	userService, err := users.NewService(users.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchases.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

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

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, userService, purchaseService, energyService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
