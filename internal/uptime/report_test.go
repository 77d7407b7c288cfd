package uptime

import (
	"errors"
	"testing"
	"time"

	"storewatch/pkg/models"
)

type fakeObservationSource struct {
	observations []models.StoreStatus // ascending by timestamp
}

func (f *fakeObservationSource) Latest(storeID int64) (*models.StoreStatus, error) {
	if len(f.observations) == 0 {
		return nil, nil
	}
	latest := f.observations[len(f.observations)-1]
	return &latest, nil
}

func (f *fakeObservationSource) InRange(storeID int64, start, end time.Time) ([]models.StoreStatus, error) {
	var out []models.StoreStatus
	for _, o := range f.observations {
		if !o.TimestampUTC.Before(start) && !o.TimestampUTC.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeScheduleSource struct {
	timezone string
	rows     []models.MenuHours
}

func (f *fakeScheduleSource) HoursFor(storeID int64) ([]models.MenuHours, error) {
	return f.rows, nil
}

func (f *fakeScheduleSource) TimezoneFor(storeID int64) (string, error) {
	return f.timezone, nil
}

func TestBuildNoObservationsEver(t *testing.T) {
	builder := NewBuilder(&fakeObservationSource{}, &fakeScheduleSource{timezone: "America/Chicago"})

	_, err := builder.Build(1)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Build() error = %v, expected ErrNoData", err)
	}
}

func TestBuildInvalidTimezone(t *testing.T) {
	source := &fakeObservationSource{observations: []models.StoreStatus{obs(models.StatusActive, base)}}
	builder := NewBuilder(source, &fakeScheduleSource{timezone: "Mars/Olympus"})

	_, err := builder.Build(1)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Build() error = %v, expected *ConfigurationError", err)
	}
}

func TestBuildAlternatingObservationsWithinBusinessHours(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	// Wednesday 2023-01-25, open 09:00-17:00; polls alternate every 15
	// minutes between active and inactive from 10:00 to 12:00 local
	var observations []models.StoreStatus
	start := time.Date(2023, 1, 25, 10, 0, 0, 0, loc)
	for i := 0; i <= 8; i++ {
		status := models.StatusActive
		if i%2 == 1 {
			status = models.StatusInactive
		}
		observations = append(observations, obs(status, start.Add(time.Duration(i)*15*time.Minute).UTC()))
	}

	builder := NewBuilder(
		&fakeObservationSource{observations: observations},
		&fakeScheduleSource{
			timezone: "America/Chicago",
			rows: []models.MenuHours{
				{ID: 1, StoreID: 1, DayOfWeek: 3, StartTimeLocal: "09:00:00", EndTimeLocal: "17:00:00"},
			},
		},
	)

	report, err := builder.Build(1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// alternation splits the trailing hour evenly
	if !approx(report.UptimeLastHour, 1800) {
		t.Errorf("UptimeLastHour = %v, expected 1800", report.UptimeLastHour)
	}
	if !approx(report.DowntimeLastHour, 1800) {
		t.Errorf("DowntimeLastHour = %v, expected 1800", report.DowntimeLastHour)
	}

	// only Wednesday is open in the trailing day: 09:00-12:00 clip, with
	// 09:00-10:00 back-filled from the first (active) observation
	if !approx(report.UptimeLastDay, 7200) {
		t.Errorf("UptimeLastDay = %v, expected 7200", report.UptimeLastDay)
	}
	if !approx(report.DowntimeLastDay, 3600) {
		t.Errorf("DowntimeLastDay = %v, expected 3600", report.DowntimeLastDay)
	}

	// the previous Wednesday's 12:00-17:00 clip has no observations and
	// holds the nearest one (active), adding 18000 seconds of uptime
	if !approx(report.UptimeLastWeek, 25200) {
		t.Errorf("UptimeLastWeek = %v, expected 25200", report.UptimeLastWeek)
	}
	if !approx(report.DowntimeLastWeek, 3600) {
		t.Errorf("DowntimeLastWeek = %v, expected 3600", report.DowntimeLastWeek)
	}
}

func TestBuildNoBusinessHoursUsesFullWindow(t *testing.T) {
	latest := time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)
	builder := NewBuilder(
		&fakeObservationSource{observations: []models.StoreStatus{obs(models.StatusActive, latest)}},
		&fakeScheduleSource{}, // no rows, no timezone: open 24/7 in the default zone
	)

	report, err := builder.Build(1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	expected := map[string][2]float64{
		"hour": {report.UptimeLastHour, 3600},
		"day":  {report.UptimeLastDay, 86400},
		"week": {report.UptimeLastWeek, 604800},
	}
	for window, v := range expected {
		if !approx(v[0], v[1]) {
			t.Errorf("uptime last %s = %v, expected %v", window, v[0], v[1])
		}
	}
	if report.DowntimeLastHour != 0 || report.DowntimeLastDay != 0 || report.DowntimeLastWeek != 0 {
		t.Errorf("expected zero downtime, got %v/%v/%v",
			report.DowntimeLastHour, report.DowntimeLastDay, report.DowntimeLastWeek)
	}
}
