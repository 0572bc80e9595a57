package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/de-energymain/buy-electricity-sub000/api/responses"
	"github.com/de-energymain/buy-electricity-sub000/api/validators"
	"github.com/de-energymain/buy-electricity-sub000/internal/users"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

type registerUserRequest struct {
	WalletID    string  `json:"walletId" validate:"required"`
	LoginMethod string  `json:"loginMethod"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Name        *string `json:"name"`
}

// RegisterUser creates the user on first contact with a wallet. Re-posting
// the same wallet returns the stored record with a 200 instead of a 201.
func RegisterUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body registerUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, created, err := svc.Register(r.Context(), users.RegisterParams{
			WalletID:    body.WalletID,
			LoginMethod: body.LoginMethod,
			Email:       body.Email,
			Name:        body.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, user)
	}
}

// GetUser returns one user by wallet address.
func GetUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		user, err := svc.Get(r.Context(), chi.URLParam(r, "walletID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// ListUsers returns every registered user.
func ListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type addPanelsRequest struct {
	Panels int64           `json:"panels" validate:"required,gt=0"`
	Cost   decimal.Decimal `json:"cost" validate:"required"`
}

// AddPanels credits purchased panels and their cost to the user's totals.
func AddPanels(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body addPanelsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.AddPanels(r.Context(), users.AddPanelsParams{
			WalletID: chi.URLParam(r, "walletID"),
			Panels:   body.Panels,
			Cost:     body.Cost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type updateProfileRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name"`
}

// UpdateProfile edits the user's contact details. Omitted fields stay as they
// are.
func UpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), users.ProfileParams{
			WalletID: chi.URLParam(r, "walletID"),
			Email:    body.Email,
			Name:     body.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

type updateNotificationsRequest struct {
	Email        *bool `json:"email"`
	Push         *bool `json:"push"`
	Transactions *bool `json:"transactions"`
	Marketing    *bool `json:"marketing"`
}

// UpdateNotifications flips the user's notification preference flags.
func UpdateNotifications(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body updateNotificationsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateNotifications(r.Context(), users.NotificationParams{
			WalletID:     chi.URLParam(r, "walletID"),
			Email:        body.Email,
			Push:         body.Push,
			Transactions: body.Transactions,
			Marketing:    body.Marketing,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// DeleteUser removes the user and their preferences.
func DeleteUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "walletID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
