package controllers

import (
	"net/http"

	"github.com/de-energymain/buy-electricity-sub000/api/responses"
	"github.com/de-energymain/buy-electricity-sub000/internal/energy"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

// LatestEnergy returns the most recent production window for the configured
// plant, oldest sample first.
func LatestEnergy(svc energy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "energy service unavailable"))
			return
		}

		readings, err := svc.Latest(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, readings)
	}
}
