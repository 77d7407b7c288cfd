package uptime

import (
	"fmt"
	"math"
	"time"

	"storewatch/pkg/models"
)

// ObservationSource provides recorded status observations for a store.
type ObservationSource interface {
	// Latest returns the most recent observation ever recorded, or nil when
	// the store has never been observed.
	Latest(storeID int64) (*models.StoreStatus, error)
	// InRange returns observations within [start, end], ascending by
	// timestamp with ties in insertion order.
	InRange(storeID int64, start, end time.Time) ([]models.StoreStatus, error)
}

// ScheduleSource provides a store's configured hours and timezone.
type ScheduleSource interface {
	HoursFor(storeID int64) ([]models.MenuHours, error)
	TimezoneFor(storeID int64) (string, error)
}

// Report is the computed uptime summary for one store. All values are
// seconds within the store's business hours.
type Report struct {
	StoreID          int64   `json:"store_id"`
	UptimeLastHour   float64 `json:"uptime_last_hour"`
	UptimeLastDay    float64 `json:"uptime_last_day"`
	UptimeLastWeek   float64 `json:"uptime_last_week"`
	DowntimeLastHour float64 `json:"downtime_last_hour"`
	DowntimeLastDay  float64 `json:"downtime_last_day"`
	DowntimeLastWeek float64 `json:"downtime_last_week"`
}

// Builder computes uptime reports from observation and schedule sources.
type Builder struct {
	observations ObservationSource
	schedules    ScheduleSource
}

// NewBuilder creates a report builder
func NewBuilder(observations ObservationSource, schedules ScheduleSource) *Builder {
	return &Builder{observations: observations, schedules: schedules}
}

// Build computes the trailing 1-hour, 1-day and 1-week uptime/downtime for a
// store. All three windows end at the store's latest observation. Downtime is
// the deficit against the business-hours capacity of each window, never
// measured independently, so uptime + downtime always equals the open
// capacity of the window.
func (b *Builder) Build(storeID int64) (*Report, error) {
	latest, err := b.observations.Latest(storeID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest observation for store %d: %w", storeID, err)
	}
	if latest == nil {
		return nil, ErrNoData
	}

	hours, err := b.schedules.HoursFor(storeID)
	if err != nil {
		return nil, fmt.Errorf("fetch menu hours for store %d: %w", storeID, err)
	}
	timezone, err := b.schedules.TimezoneFor(storeID)
	if err != nil {
		return nil, fmt.Errorf("fetch timezone for store %d: %w", storeID, err)
	}
	sched, err := NewSchedule(timezone, hours)
	if err != nil {
		return nil, err
	}

	end := latest.TimestampUTC
	observations, err := b.observations.InRange(storeID, end.Add(-7*24*time.Hour), end)
	if err != nil {
		return nil, fmt.Errorf("fetch observations for store %d: %w", storeID, err)
	}

	report := &Report{StoreID: storeID}
	windows := []struct {
		length   time.Duration
		uptime   *float64
		downtime *float64
	}{
		{time.Hour, &report.UptimeLastHour, &report.DowntimeLastHour},
		{24 * time.Hour, &report.UptimeLastDay, &report.DowntimeLastDay},
		{7 * 24 * time.Hour, &report.UptimeLastWeek, &report.DowntimeLastWeek},
	}
	for _, w := range windows {
		active, capacity := BusinessSeconds(sched, observations, end.Add(-w.length), end)
		*w.uptime = active
		*w.downtime = math.Max(capacity-active, 0)
	}
	return report, nil
}
