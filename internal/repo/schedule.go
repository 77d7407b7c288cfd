package repo

import (
	"errors"

	"storewatch/pkg/models"

	"gorm.io/gorm"
)

// ScheduleRepository handles business-hours and timezone data access
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// HoursFor returns a store's business-hours rows. An empty result means the
// store is open 24/7.
func (r *ScheduleRepository) HoursFor(storeID int64) ([]models.MenuHours, error) {
	var rows []models.MenuHours
	err := r.db.Where("store_id = ?", storeID).
		Order("day_of_week ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TimezoneFor returns the IANA timezone configured for a store through its
// business-hours rows, falling back to models.DefaultTimezone when none is
// configured.
func (r *ScheduleRepository) TimezoneFor(storeID int64) (string, error) {
	var timezone models.Timezone
	err := r.db.Joins("JOIN menu_hours ON menu_hours.timezone_id = timezones.id").
		Where("menu_hours.store_id = ?", storeID).
		First(&timezone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultTimezone, nil
	}
	if err != nil {
		return "", err
	}
	if timezone.TimezoneStr == "" {
		return models.DefaultTimezone, nil
	}
	return timezone.TimezoneStr, nil
}
