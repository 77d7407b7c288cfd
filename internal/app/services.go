package app

import (
	"storewatch/internal/repo"
	"storewatch/internal/services"

	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB              *gorm.DB
	StoreRepo       *repo.StoreRepository
	ObservationRepo *repo.ObservationRepository
	ScheduleRepo    *repo.ScheduleRepository
	ReportRepo      *repo.ReportRepository
	ReportService   *services.ReportService
	IngestService   *services.IngestService
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	return &Services{
		DB:              db,
		StoreRepo:       repo.NewStoreRepository(db),
		ObservationRepo: repo.NewObservationRepository(db),
		ScheduleRepo:    repo.NewScheduleRepository(db),
		ReportRepo:      repo.NewReportRepository(db),
		ReportService:   services.NewReportService(db),
		IngestService:   services.NewIngestService(db),
	}
}
