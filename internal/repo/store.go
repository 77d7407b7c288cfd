package repo

import (
	"storewatch/pkg/models"

	"gorm.io/gorm"
)

// StoreRepository handles store data access
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// GetByID gets a store by ID
func (r *StoreRepository) GetByID(id int64) (*models.Store, error) {
	var store models.Store
	err := r.db.Where("id = ?", id).First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// List returns stores ordered by ID with pagination
func (r *StoreRepository) List(limit, offset int) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	if err := r.db.Model(&models.Store{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}
