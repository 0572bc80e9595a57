package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/de-energymain/buy-electricity-sub000/api/responses"
	"github.com/de-energymain/buy-electricity-sub000/api/validators"
	"github.com/de-energymain/buy-electricity-sub000/internal/purchases"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

type recordPurchaseRequest struct {
	TxHash        string          `json:"txHash" validate:"required"`
	WalletID      string          `json:"walletId" validate:"required"`
	FarmName      string          `json:"farmName"`
	Location      string          `json:"location"`
	PaymentMethod string          `json:"paymentMethod"`
	TokenAmount   decimal.Decimal `json:"tokenAmount"`
	Panels        int64           `json:"panels" validate:"required,gt=0"`
	Cost          decimal.Decimal `json:"cost"`
	CapacityKW    decimal.Decimal `json:"capacityKW"`
	OutputKWH     decimal.Decimal `json:"outputKWH"`
	PurchasedAt   *time.Time      `json:"purchasedAt"`
}

// RecordPurchase stores the receipt for a settled panel transaction.
func RecordPurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		var body recordPurchaseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := purchases.RecordParams{
			TxHash:        body.TxHash,
			WalletID:      body.WalletID,
			FarmName:      body.FarmName,
			Location:      body.Location,
			PaymentMethod: body.PaymentMethod,
			TokenAmount:   body.TokenAmount,
			PanelCount:    body.Panels,
			Cost:          body.Cost,
			CapacityKW:    body.CapacityKW,
			OutputKWH:     body.OutputKWH,
		}
		if body.PurchasedAt != nil {
			params.PurchasedAt = *body.PurchasedAt
		}

		purchase, err := svc.Record(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

// ListPurchases returns receipts newest first. A walletId query parameter
// narrows the list to one wallet.
func ListPurchases(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		walletID := strings.TrimSpace(r.URL.Query().Get("walletId"))
		list, err := svc.List(r.Context(), walletID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// DeletePurchase removes a receipt by its transaction hash.
func DeletePurchase(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "txHash")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
