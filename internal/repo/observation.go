package repo

import (
	"errors"
	"time"

	"storewatch/pkg/models"

	"gorm.io/gorm"
)

// ObservationRepository handles store status observation data access.
// Observations are append-only; this repository only reads them.
type ObservationRepository struct {
	db *gorm.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Latest returns the most recent observation ever recorded for a store, or
// nil when the store has never been observed.
func (r *ObservationRepository) Latest(storeID int64) (*models.StoreStatus, error) {
	var observation models.StoreStatus
	err := r.db.Where("store_id = ?", storeID).
		Order("timestamp_utc DESC, id DESC").
		First(&observation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &observation, nil
}

// InRange returns observations within [start, end] ascending by timestamp,
// duplicate timestamps kept in insertion order. An empty result is not an
// error.
func (r *ObservationRepository) InRange(storeID int64, start, end time.Time) ([]models.StoreStatus, error) {
	var observations []models.StoreStatus
	err := r.db.Where("store_id = ? AND timestamp_utc >= ? AND timestamp_utc <= ?", storeID, start, end).
		Order("timestamp_utc ASC, id ASC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}
	return observations, nil
}
