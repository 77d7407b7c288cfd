package services

import (
	"time"

	"storewatch/internal/repo"
	"storewatch/internal/uptime"
	"storewatch/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReportService computes uptime reports and manages their persisted
// trigger/poll lifecycle. Generation runs in a goroutine per trigger; each
// run only reads observations and writes its own report row, so concurrent
// triggers need no coordination.
type ReportService struct {
	builder *uptime.Builder
	reports *repo.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		builder: uptime.NewBuilder(repo.NewObservationRepository(db), repo.NewScheduleRepository(db)),
		reports: repo.NewReportRepository(db),
	}
}

// BuildNow computes a report synchronously without persisting it
func (s *ReportService) BuildNow(storeID int64) (*uptime.Report, error) {
	return s.builder.Build(storeID)
}

// Trigger creates a pending report row and starts generation in the
// background. The returned row carries the ID to poll with.
func (s *ReportService) Trigger(storeID int64) (*models.UptimeReport, error) {
	report := &models.UptimeReport{StoreID: storeID, Status: models.ReportPending}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}
	go s.generate(report.ID, storeID)
	return report, nil
}

// Get returns a report row by ID
func (s *ReportService) Get(id uuid.UUID) (*models.UptimeReport, error) {
	return s.reports.GetByID(id)
}

func (s *ReportService) generate(reportID uuid.UUID, storeID int64) {
	record, err := s.reports.GetByID(reportID)
	if err != nil {
		log.Error().Err(err).Str("report_id", reportID.String()).Msg("Failed to load report row")
		return
	}

	record.Status = models.ReportRunning
	if err := s.reports.Update(record); err != nil {
		log.Error().Err(err).Str("report_id", reportID.String()).Msg("Failed to mark report running")
		return
	}

	result, err := s.builder.Build(storeID)
	now := time.Now().UTC()
	record.CompletedAt = &now
	if err != nil {
		record.Status = models.ReportFailed
		record.Error = err.Error()
		log.Warn().Err(err).Int64("store_id", storeID).Str("report_id", reportID.String()).Msg("Report generation failed")
	} else {
		record.Status = models.ReportCompleted
		record.UptimeLastHour = result.UptimeLastHour
		record.UptimeLastDay = result.UptimeLastDay
		record.UptimeLastWeek = result.UptimeLastWeek
		record.DowntimeLastHour = result.DowntimeLastHour
		record.DowntimeLastDay = result.DowntimeLastDay
		record.DowntimeLastWeek = result.DowntimeLastWeek
	}

	if err := s.reports.Update(record); err != nil {
		log.Error().Err(err).Str("report_id", reportID.String()).Msg("Failed to store report result")
		return
	}
	log.Info().Int64("store_id", storeID).Str("report_id", reportID.String()).Str("status", record.Status).Msg("Report generation finished")
}
