package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status values recorded for a store observation
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultTimezone is assumed when a store has no timezone row
const DefaultTimezone = "America/Chicago"

// Store represents a monitored store
type Store struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Timezone represents an IANA timezone referenced by business-hours rows
type Timezone struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	TimezoneStr string `gorm:"size:50;not null;default:'America/Chicago'" json:"timezone_str" validate:"required"`
}

// MenuHours represents one weekday's business-hours window for a store.
// Times are local wall-clock in HH:MM:SS; DayOfWeek follows time.Weekday
// (0=Sunday). A store with no rows at all is treated as open 24/7.
type MenuHours struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	StoreID        int64  `gorm:"index;not null" json:"store_id"`
	DayOfWeek      int    `gorm:"not null" json:"day_of_week"`
	StartTimeLocal string `gorm:"size:8;not null;default:'00:00:00'" json:"start_time_local"`
	EndTimeLocal   string `gorm:"size:8;not null;default:'23:59:59'" json:"end_time_local"`
	TimezoneID     *int64 `gorm:"index" json:"timezone_id"`
}

// StoreStatus is a single point-in-time observation of a store.
// Rows are append-only; timestamp order is the only meaningful order.
type StoreStatus struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	StoreID      int64     `gorm:"index:idx_store_status_store_ts;not null" json:"store_id"`
	TimestampUTC time.Time `gorm:"column:timestamp_utc;index:idx_store_status_store_ts;not null" json:"timestamp_utc"`
	Status       string    `gorm:"size:10;not null;check:status IN ('active','inactive')" json:"status"`
}

// Report status lifecycle for async generation
const (
	ReportPending   = "pending"
	ReportRunning   = "running"
	ReportCompleted = "completed"
	ReportFailed    = "failed"
)

// UptimeReport is a persisted report generated by the trigger/poll flow.
// All uptime/downtime values are seconds; conversion to hours is a
// presentation concern and happens at the HTTP boundary only.
type UptimeReport struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID          int64      `gorm:"index;not null" json:"store_id"`
	Status           string     `gorm:"size:10;not null;default:'pending'" json:"status"`
	UptimeLastHour   float64    `json:"uptime_last_hour"`
	UptimeLastDay    float64    `json:"uptime_last_day"`
	UptimeLastWeek   float64    `json:"uptime_last_week"`
	DowntimeLastHour float64    `json:"downtime_last_hour"`
	DowntimeLastDay  float64    `json:"downtime_last_day"`
	DowntimeLastWeek float64    `json:"downtime_last_week"`
	Error            string     `json:"error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// BeforeCreate hook to generate UUID if not set
func (r *UptimeReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		&Store{},
		&Timezone{},
		&MenuHours{},
		&StoreStatus{},
		&UptimeReport{},
	}
}
