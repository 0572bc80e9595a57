package users

import (
	"context"
	"errors"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines user registration and mutation operations.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*models.User, bool, error)
	Get(ctx context.Context, walletID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AddPanels(ctx context.Context, params AddPanelsParams) (*models.User, error)
	UpdateProfile(ctx context.Context, params ProfileParams) (*models.User, error)
	UpdateNotifications(ctx context.Context, params NotificationParams) (*models.User, error)
	Delete(ctx context.Context, walletID string) error
}

// RegisterParams describe a first-time (or repeated) wallet registration.
type RegisterParams struct {
	WalletID    string
	LoginMethod string
	Email       *string
	Name        *string
}

// AddPanelsParams increment a user's ownership counters after a settled purchase.
type AddPanelsParams struct {
	WalletID string
	Panels   int64
	Cost     decimal.Decimal
}

// ProfileParams carry user-initiated profile edits. Nil pointers leave the
// stored value untouched.
type ProfileParams struct {
	WalletID string
	Email    *string
	Name     *string
}

// NotificationParams carry the four notification preference flags.
type NotificationParams struct {
	WalletID     string
	Email        *bool
	Push         *bool
	Transactions *bool
	Marketing    *bool
}

type service struct {
	repo Repository
}

// NewService wires the users service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

// Register creates the user the first time a wallet shows up. Re-registering
// an existing wallet returns the stored record unchanged; the second return
// value reports whether a row was created.
func (s *service) Register(ctx context.Context, params RegisterParams) (*models.User, bool, error) {
	if params.WalletID == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}

	if existing, err := s.repo.GetByWalletID(ctx, params.WalletID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	loginMethod := params.LoginMethod
	if loginMethod == "" {
		loginMethod = "wallet"
	}
	user := &models.User{
		WalletID:           params.WalletID,
		LoginMethod:        loginMethod,
		Email:              params.Email,
		Name:               params.Name,
		PurchasedCost:      decimal.Zero,
		AccruedYield:       decimal.Zero,
		NotifyEmail:        true,
		NotifyPush:         true,
		NotifyTransactions: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Two concurrent first registrations can race past the lookup; the
		// unique index decides the winner and the loser reads it back.
		if db.IsUniqueViolation(err, "users_wallet_id_key") {
			existing, lookupErr := s.repo.GetByWalletID(ctx, params.WalletID)
			if lookupErr != nil {
				return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, lookupErr, "lookup user after conflict")
			}
			return existing, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, true, nil
}

func (s *service) Get(ctx context.Context, walletID string) (*models.User, error) {
	if walletID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}
	user, err := s.repo.GetByWalletID(ctx, walletID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return users, nil
}

func (s *service) AddPanels(ctx context.Context, params AddPanelsParams) (*models.User, error) {
	if params.WalletID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}
	if params.Panels <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "panel count must be positive")
	}
	if params.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}

	rows, err := s.repo.IncrementPanels(ctx, params.WalletID, params.Panels, params.Cost)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment panels")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.Get(ctx, params.WalletID)
}

func (s *service) UpdateProfile(ctx context.Context, params ProfileParams) (*models.User, error) {
	if params.WalletID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}

	fields := map[string]any{}
	if params.Email != nil {
		fields["email"] = *params.Email
	}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile fields to update")
	}

	rows, err := s.repo.UpdateProfile(ctx, params.WalletID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.Get(ctx, params.WalletID)
}

func (s *service) UpdateNotifications(ctx context.Context, params NotificationParams) (*models.User, error) {
	if params.WalletID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}

	fields := map[string]any{}
	if params.Email != nil {
		fields["notify_email"] = *params.Email
	}
	if params.Push != nil {
		fields["notify_push"] = *params.Push
	}
	if params.Transactions != nil {
		fields["notify_transactions"] = *params.Transactions
	}
	if params.Marketing != nil {
		fields["notify_marketing"] = *params.Marketing
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no notification flags to update")
	}

	rows, err := s.repo.UpdateProfile(ctx, params.WalletID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update notifications")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return s.Get(ctx, params.WalletID)
}

func (s *service) Delete(ctx context.Context, walletID string) error {
	if walletID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}
	rows, err := s.repo.DeleteByWalletID(ctx, walletID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
