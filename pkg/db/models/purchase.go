package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable receipt for one panel transaction. TxHash is the
// on-chain transaction hash and prevents recording the same settlement twice.
type Purchase struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TxHash        string          `gorm:"column:tx_hash;type:text;not null;uniqueIndex" json:"txHash"`
	WalletID      string          `gorm:"column:wallet_id;not null;index" json:"walletID"`
	FarmName      string          `gorm:"column:farm_name;not null" json:"farmName"`
	Location      string          `gorm:"column:location;not null" json:"location"`
	PaymentMethod string          `gorm:"column:payment_method;not null" json:"paymentMethod"`
	TokenAmount   decimal.Decimal `gorm:"column:token_amount;type:numeric(18,6);not null" json:"tokenAmount"`
	PanelCount    int64           `gorm:"column:panel_count;not null" json:"panelCount"`
	Cost          decimal.Decimal `gorm:"column:cost;type:numeric(18,6);not null" json:"cost"`
	CapacityKW    decimal.Decimal `gorm:"column:capacity_kw;type:numeric(12,3);not null" json:"capacityKW"`
	OutputKWH     decimal.Decimal `gorm:"column:output_kwh;type:numeric(12,3);not null" json:"outputKWH"`
	PurchasedAt   time.Time       `gorm:"column:purchased_at;not null" json:"purchasedAt"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
