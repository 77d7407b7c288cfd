package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"storewatch/internal/services"
	"storewatch/internal/uptime"
	"storewatch/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReportHandler handles uptime report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TriggerReportRequest requests report generation for one store
type TriggerReportRequest struct {
	StoreID int64 `json:"store_id" validate:"required"`
}

// ReportResponse is the wire form of a computed report. All values are
// seconds rounded to one decimal place; divide by 3600 at display time for
// hours.
type ReportResponse struct {
	StoreID          int64   `json:"store_id"`
	UptimeLastHour   float64 `json:"uptime_last_hour"`
	UptimeLastDay    float64 `json:"uptime_last_day"`
	UptimeLastWeek   float64 `json:"uptime_last_week"`
	DowntimeLastHour float64 `json:"downtime_last_hour"`
	DowntimeLastDay  float64 `json:"downtime_last_day"`
	DowntimeLastWeek float64 `json:"downtime_last_week"`
}

// Trigger godoc
// @Summary Trigger report generation
// @Description Start asynchronous uptime report generation for a store
// @Tags reports
// @Accept json
// @Produce json
// @Param request body TriggerReportRequest true "Store to report on"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /reports/trigger [post]
func (h *ReportHandler) Trigger(c echo.Context) error {
	var req TriggerReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportService.Trigger(req.StoreID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to trigger report"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"report_id": report.ID.String(),
		"status":    report.Status,
	})
}

// Get godoc
// @Summary Get a generated report
// @Description Poll a triggered report; returns its status until completed
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.UptimeReport
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid report ID"})
	}

	report, err := h.reportService.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Report not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load report"})
	}

	if report.Status != models.ReportCompleted {
		response := map[string]string{
			"report_id": report.ID.String(),
			"status":    report.Status,
		}
		if report.Status == models.ReportFailed {
			response["error"] = report.Error
		}
		return c.JSON(http.StatusOK, response)
	}

	return c.JSON(http.StatusOK, report)
}

// GetStoreUptime godoc
// @Summary Compute a store's uptime report
// @Description Compute the trailing 1h/1d/1w uptime report synchronously
// @Tags reports
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /stores/{id}/uptime [get]
func (h *ReportHandler) GetStoreUptime(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid store ID"})
	}

	report, err := h.reportService.BuildNow(storeID)
	if err != nil {
		var cfgErr *uptime.ConfigurationError
		switch {
		case errors.Is(err, uptime.ErrNoData):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Store has no observations"})
		case errors.As(err, &cfgErr):
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": cfgErr.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute report"})
		}
	}

	return c.JSON(http.StatusOK, toReportResponse(report))
}

func toReportResponse(report *uptime.Report) ReportResponse {
	return ReportResponse{
		StoreID:          report.StoreID,
		UptimeLastHour:   roundSeconds(report.UptimeLastHour),
		UptimeLastDay:    roundSeconds(report.UptimeLastDay),
		UptimeLastWeek:   roundSeconds(report.UptimeLastWeek),
		DowntimeLastHour: roundSeconds(report.DowntimeLastHour),
		DowntimeLastDay:  roundSeconds(report.DowntimeLastDay),
		DowntimeLastWeek: roundSeconds(report.DowntimeLastWeek),
	}
}

// roundSeconds keeps one decimal place for display
func roundSeconds(v float64) float64 {
	return math.Round(v*10) / 10
}
