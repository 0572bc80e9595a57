package energy

import (
	"context"

	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists telemetry readings keyed by measurement time.
type Repository interface {
	// InsertMissing writes only the readings whose measured_at is not yet
	// stored and reports how many rows were inserted. Existing rows are
	// never modified.
	InsertMissing(ctx context.Context, readings []models.EnergyReading) (int64, error)
	Latest(ctx context.Context, plantID string, limit int) ([]models.EnergyReading, error)
	Count(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an energy readings repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) InsertMissing(ctx context.Context, readings []models.EnergyReading) (int64, error) {
	if len(readings) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "measured_at"}},
			DoNothing: true,
		}).
		Create(&readings)
	return result.RowsAffected, result.Error
}

// Latest returns the newest readings for the plant in chronological order, so
// the most recent sample is last.
func (r *repositoryImpl) Latest(ctx context.Context, plantID string, limit int) ([]models.EnergyReading, error) {
	var readings []models.EnergyReading
	query := r.db.WithContext(ctx).Order("measured_at DESC").Limit(limit)
	if plantID != "" {
		query = query.Where("plant_id = ?", plantID)
	}
	if err := query.Find(&readings).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
	return readings, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EnergyReading{}).Count(&count).Error
	return count, err
}
