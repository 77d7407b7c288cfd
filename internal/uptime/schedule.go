package uptime

import (
	"fmt"
	"time"

	"storewatch/pkg/models"
)

// wallClock is a local time-of-day with no date attached.
type wallClock struct {
	hour, min, sec int
}

func parseWallClock(v string) (wallClock, error) {
	t, err := time.Parse("15:04:05", v)
	if err != nil {
		t, err = time.Parse("15:04", v)
	}
	if err != nil {
		return wallClock{}, fmt.Errorf("invalid time of day %q: %w", v, err)
	}
	return wallClock{t.Hour(), t.Minute(), t.Second()}, nil
}

func (w wallClock) before(other wallClock) bool {
	if w.hour != other.hour {
		return w.hour < other.hour
	}
	if w.min != other.min {
		return w.min < other.min
	}
	return w.sec < other.sec
}

type businessDay struct {
	open, close wallClock
}

// Schedule is a store's resolved business-hours configuration: an IANA
// location plus one open/close window per weekday. A store with no
// configured rows at all is open around the clock.
type Schedule struct {
	Location *time.Location

	days    map[time.Weekday]businessDay
	open247 bool
}

// NewSchedule validates and resolves a store's hours rows against a timezone
// identifier. An empty identifier falls back to models.DefaultTimezone.
// Unresolvable timezones and rows with start after end yield a
// ConfigurationError.
func NewSchedule(timezone string, rows []models.MenuHours) (*Schedule, error) {
	if timezone == "" {
		timezone = models.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, &ConfigurationError{Reason: "unresolvable timezone " + timezone, Err: err}
	}

	sched := &Schedule{
		Location: loc,
		days:     make(map[time.Weekday]businessDay, len(rows)),
		open247:  len(rows) == 0,
	}
	for _, row := range rows {
		open, err := parseWallClock(row.StartTimeLocal)
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("menu hours row %d", row.ID), Err: err}
		}
		close, err := parseWallClock(row.EndTimeLocal)
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("menu hours row %d", row.ID), Err: err}
		}
		if close.before(open) {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("menu hours row %d: start %s after end %s", row.ID, row.StartTimeLocal, row.EndTimeLocal),
			}
		}
		sched.days[time.Weekday(row.DayOfWeek)] = businessDay{open: open, close: close}
	}
	return sched, nil
}

// WindowFor resolves the UTC open/close interval for the local calendar day
// containing localDate. ok is false when the store is closed that day.
// Wall-clock times are anchored on the specific date, so DST transitions
// shift the UTC instants correctly.
func (s *Schedule) WindowFor(localDate time.Time) (Interval, bool) {
	day := localDate.In(s.Location)
	y, m, d := day.Date()

	if s.open247 {
		open := time.Date(y, m, d, 0, 0, 0, 0, s.Location)
		close := time.Date(y, m, d+1, 0, 0, 0, 0, s.Location)
		return Interval{Start: open.UTC(), End: close.UTC()}, true
	}

	hours, ok := s.days[day.Weekday()]
	if !ok {
		return Interval{}, false
	}
	open := time.Date(y, m, d, hours.open.hour, hours.open.min, hours.open.sec, 0, s.Location)
	close := time.Date(y, m, d, hours.close.hour, hours.close.min, hours.close.sec, 0, s.Location)
	return Interval{Start: open.UTC(), End: close.UTC()}, true
}
