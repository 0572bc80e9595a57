package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/de-energymain/buy-electricity-sub000/api/controllers"
	"github.com/de-energymain/buy-electricity-sub000/api/middleware"
	"github.com/de-energymain/buy-electricity-sub000/internal/energy"
	"github.com/de-energymain/buy-electricity-sub000/internal/purchases"
	"github.com/de-energymain/buy-electricity-sub000/internal/users"
	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
	"github.com/de-energymain/buy-electricity-sub000/pkg/metrics"
)

type redisPinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires every HTTP surface of the investment API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redisPinger,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	purchaseService purchases.Service,
	energyService energy.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(userService, logg))
			r.Post("/", controllers.RegisterUser(userService, logg))
			r.Route("/{walletID}", func(r chi.Router) {
				r.Get("/", controllers.GetUser(userService, logg))
				r.Patch("/", controllers.UpdateProfile(userService, logg))
				r.Delete("/", controllers.DeleteUser(userService, logg))
				r.Patch("/panels", controllers.AddPanels(userService, logg))
				r.Patch("/notifications", controllers.UpdateNotifications(userService, logg))
			})
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", controllers.ListPurchases(purchaseService, logg))
			r.Post("/", controllers.RecordPurchase(purchaseService, logg))
			r.Delete("/{txHash}", controllers.DeletePurchase(purchaseService, logg))
		})

		r.Get("/energy/latest", controllers.LatestEnergy(energyService, logg))
	})

	return r
}
