package purchases

import (
	"context"
	"time"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service records and serves immutable purchase receipts.
type Service interface {
	Record(ctx context.Context, params RecordParams) (*models.Purchase, error)
	List(ctx context.Context, walletID string) ([]models.Purchase, error)
	Delete(ctx context.Context, txHash string) error
}

// RecordParams describe one settled panel transaction.
type RecordParams struct {
	TxHash        string
	WalletID      string
	FarmName      string
	Location      string
	PaymentMethod string
	TokenAmount   decimal.Decimal
	PanelCount    int64
	Cost          decimal.Decimal
	CapacityKW    decimal.Decimal
	OutputKWH     decimal.Decimal
	PurchasedAt   time.Time
}

type service struct {
	repo Repository
}

// NewService wires the purchases service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "purchases repository required")
	}
	return &service{repo: repo}, nil
}

// Record writes the receipt exactly once. A repeated transaction hash means
// the settlement was already recorded and is rejected as a conflict.
func (s *service) Record(ctx context.Context, params RecordParams) (*models.Purchase, error) {
	if params.TxHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction hash required")
	}
	if params.WalletID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet id required")
	}
	if params.PanelCount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "panel count must be positive")
	}
	if params.Cost.IsNegative() || params.TokenAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts must not be negative")
	}

	purchasedAt := params.PurchasedAt
	if purchasedAt.IsZero() {
		purchasedAt = time.Now().UTC()
	}

	purchase := &models.Purchase{
		TxHash:        params.TxHash,
		WalletID:      params.WalletID,
		FarmName:      params.FarmName,
		Location:      params.Location,
		PaymentMethod: params.PaymentMethod,
		TokenAmount:   params.TokenAmount,
		PanelCount:    params.PanelCount,
		Cost:          params.Cost,
		CapacityKW:    params.CapacityKW,
		OutputKWH:     params.OutputKWH,
		PurchasedAt:   purchasedAt,
	}
	if err := s.repo.Create(ctx, purchase); err != nil {
		if db.IsUniqueViolation(err, "purchases_tx_hash_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "purchase already recorded for this transaction")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record purchase")
	}
	return purchase, nil
}

// List returns receipts newest first, optionally scoped to one wallet.
func (s *service) List(ctx context.Context, walletID string) ([]models.Purchase, error) {
	var (
		purchases []models.Purchase
		err       error
	)
	if walletID != "" {
		purchases, err = s.repo.ListByWalletID(ctx, walletID)
	} else {
		purchases, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return purchases, nil
}

func (s *service) Delete(ctx context.Context, txHash string) error {
	if txHash == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction hash required")
	}
	rows, err := s.repo.DeleteByTxHash(ctx, txHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete purchase")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	return nil
}
