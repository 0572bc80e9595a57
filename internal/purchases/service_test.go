package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	pkgerrors "github.com/de-energymain/buy-electricity-sub000/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakePurchasesRepo struct {
	byHash map[string]*models.Purchase
}

func newFakePurchasesRepo() *fakePurchasesRepo {
	return &fakePurchasesRepo{byHash: map[string]*models.Purchase{}}
}

func (f *fakePurchasesRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	if _, exists := f.byHash[purchase.TxHash]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.byHash[purchase.TxHash] = purchase
	return nil
}

func (f *fakePurchasesRepo) List(ctx context.Context) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, p := range f.byHash {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePurchasesRepo) ListByWalletID(ctx context.Context, walletID string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, p := range f.byHash {
		if p.WalletID == walletID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePurchasesRepo) DeleteByTxHash(ctx context.Context, txHash string) (int64, error) {
	if _, ok := f.byHash[txHash]; !ok {
		return 0, nil
	}
	delete(f.byHash, txHash)
	return 1, nil
}

func validParams() RecordParams {
	return RecordParams{
		TxHash:        "0xhash1",
		WalletID:      "0xW1",
		FarmName:      "Atacama One",
		Location:      "Chile",
		PaymentMethod: "usdc",
		TokenAmount:   decimal.NewFromInt(500),
		PanelCount:    2,
		Cost:          decimal.NewFromInt(500),
		CapacityKW:    decimal.RequireFromString("0.8"),
		OutputKWH:     decimal.RequireFromString("1.4"),
		PurchasedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordOnce(t *testing.T) {
	repo := newFakePurchasesRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	purchase, err := svc.Record(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if purchase.TxHash != "0xhash1" {
		t.Fatalf("unexpected hash %s", purchase.TxHash)
	}
}

func TestRecordDuplicateHashIsConflict(t *testing.T) {
	repo := newFakePurchasesRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Record(ctx, validParams()); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	_, err := svc.Record(ctx, validParams())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if len(repo.byHash) != 1 {
		t.Fatalf("duplicate must not add a receipt, have %d", len(repo.byHash))
	}
}

func TestRecordValidation(t *testing.T) {
	svc, _ := NewService(newFakePurchasesRepo())
	ctx := context.Background()

	params := validParams()
	params.TxHash = ""
	if _, err := svc.Record(ctx, params); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for missing hash, got %v", err)
	}

	params = validParams()
	params.PanelCount = 0
	if _, err := svc.Record(ctx, params); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for zero panels, got %v", err)
	}
}

func TestRecordDefaultsPurchasedAt(t *testing.T) {
	svc, _ := NewService(newFakePurchasesRepo())

	params := validParams()
	params.PurchasedAt = time.Time{}
	purchase, err := svc.Record(context.Background(), params)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if purchase.PurchasedAt.IsZero() {
		t.Fatal("expected purchased_at to default to now")
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc, _ := NewService(newFakePurchasesRepo())

	err := svc.Delete(context.Background(), "0xmissing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
