package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnergyReading is one quarter-hourly telemetry sample pulled from the
// monitoring portal. MeasuredAt is the dedup key: ingestion inserts only when
// no reading exists for that timestamp and never rewrites a stored row.
type EnergyReading struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	MeasuredAt    time.Time       `gorm:"column:measured_at;not null;uniqueIndex" json:"measuredAt"`
	MeterID       string          `gorm:"column:meter_id;not null" json:"meterID"`
	PlantID       string          `gorm:"column:plant_id;not null;index" json:"plantID"`
	RoofID        string          `gorm:"column:roof_id;not null" json:"roofID"`
	ValueKWH      decimal.Decimal `gorm:"column:value_kwh;type:numeric(14,4);not null" json:"valueKWH"`
	CumulativeKWH decimal.Decimal `gorm:"column:cumulative_kwh;type:numeric(18,4);not null" json:"cumulativeKWH"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
