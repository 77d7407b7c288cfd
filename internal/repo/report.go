package repo

import (
	"storewatch/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository handles persisted uptime report rows
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report row
func (r *ReportRepository) Create(report *models.UptimeReport) error {
	return r.db.Create(report).Error
}

// GetByID gets a report by ID
func (r *ReportRepository) GetByID(id uuid.UUID) (*models.UptimeReport, error) {
	var report models.UptimeReport
	err := r.db.Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Update saves the full report row
func (r *ReportRepository) Update(report *models.UptimeReport) error {
	return r.db.Save(report).Error
}

// ListByStore returns a store's reports, newest first
func (r *ReportRepository) ListByStore(storeID int64, limit int) ([]models.UptimeReport, error) {
	var reports []models.UptimeReport
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
