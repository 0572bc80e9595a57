package purchases

import (
	"context"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for purchase receipts.
type Repository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	List(ctx context.Context) ([]models.Purchase, error)
	ListByWalletID(ctx context.Context, walletID string) ([]models.Purchase, error)
	DeleteByTxHash(ctx context.Context, txHash string) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a purchases repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).Order("purchased_at DESC, id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *repositoryImpl) ListByWalletID(ctx context.Context, walletID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("purchased_at DESC, id DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *repositoryImpl) DeleteByTxHash(ctx context.Context, txHash string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tx_hash = ?", txHash).
		Delete(&models.Purchase{})
	return result.RowsAffected, result.Error
}
