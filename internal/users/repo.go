package users

import (
	"context"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for users.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByWalletID(ctx context.Context, walletID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	IncrementPanels(ctx context.Context, walletID string, panels int64, cost decimal.Decimal) (int64, error)
	UpdateProfile(ctx context.Context, walletID string, fields map[string]any) (int64, error)
	DeleteByWalletID(ctx context.Context, walletID string) (int64, error)

	ListInvestors(ctx context.Context) ([]models.User, error)
	AccrueYield(ctx context.Context, id uuid.UUID, increment decimal.Decimal) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a users repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repositoryImpl) GetByWalletID(ctx context.Context, walletID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

// IncrementPanels bumps the ownership counters in a single SQL statement so
// concurrent purchases never lose updates.
func (r *repositoryImpl) IncrementPanels(ctx context.Context, walletID string, panels int64, cost decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("wallet_id = ?", walletID).
		Updates(map[string]any{
			"panel_count":    gorm.Expr("panel_count + ?", panels),
			"purchased_cost": gorm.Expr("purchased_cost + ?", cost),
		})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) UpdateProfile(ctx context.Context, walletID string, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("wallet_id = ?", walletID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteByWalletID(ctx context.Context, walletID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Delete(&models.User{})
	return result.RowsAffected, result.Error
}

// ListInvestors returns every user with panels under accrual.
func (r *repositoryImpl) ListInvestors(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("purchased_cost > 0").Find(&users).Error
	return users, err
}

// AccrueYield applies one accrual increment as an atomic in-database addition,
// never a read-modify-write of the row.
func (r *repositoryImpl) AccrueYield(ctx context.Context, id uuid.UUID, increment decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("accrued_yield", gorm.Expr("accrued_yield + ?", increment)).Error
}
