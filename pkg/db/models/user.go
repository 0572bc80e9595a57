package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an investor identified by their wallet address. WalletID is the
// natural key and never changes after creation.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WalletID    string    `gorm:"column:wallet_id;type:text;not null;uniqueIndex" json:"walletID"`
	LoginMethod string    `gorm:"column:login_method;not null;default:'wallet'" json:"loginMethod"`
	Email       *string   `gorm:"column:email" json:"email,omitempty"`
	Name        *string   `gorm:"column:name" json:"name,omitempty"`

	// Panel ownership is a count plus cumulative figures, not per-panel rows.
	PanelCount    int64           `gorm:"column:panel_count;not null;default:0" json:"panelCount"`
	PurchasedCost decimal.Decimal `gorm:"column:purchased_cost;type:numeric(18,6);not null;default:0" json:"purchasedCost"`
	AccruedYield  decimal.Decimal `gorm:"column:accrued_yield;type:numeric(18,6);not null;default:0" json:"accruedYield"`

	NotifyEmail        bool `gorm:"column:notify_email;not null;default:true" json:"notifyEmail"`
	NotifyPush         bool `gorm:"column:notify_push;not null;default:true" json:"notifyPush"`
	NotifyTransactions bool `gorm:"column:notify_transactions;not null;default:true" json:"notifyTransactions"`
	NotifyMarketing    bool `gorm:"column:notify_marketing;not null;default:false" json:"notifyMarketing"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
