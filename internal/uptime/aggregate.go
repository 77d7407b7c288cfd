package uptime

import (
	"time"

	"storewatch/pkg/models"
)

// BusinessSeconds intersects the interpolated status timeline with a store's
// business hours over [windowStart, windowEnd]. It walks every local calendar
// day touched by the window, clips that day's open hours to the window, and
// accumulates estimated active seconds plus the total open capacity of the
// clipped windows. Days whose hours fall entirely outside the window
// contribute nothing.
func BusinessSeconds(sched *Schedule, observations []models.StoreStatus, windowStart, windowEnd time.Time) (active, capacity float64) {
	if !windowEnd.After(windowStart) {
		return 0, 0
	}

	window := Interval{Start: windowStart, End: windowEnd}
	endLocal := windowEnd.In(sched.Location)

	startLocal := windowStart.In(sched.Location)
	y, m, d := startLocal.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, sched.Location)

	for day.Before(endLocal) {
		if hours, open := sched.WindowFor(day); open {
			clip := hours.Clip(window)
			if !clip.Empty() {
				capacity += clip.Seconds()
				active += ActiveSeconds(observations, clip.Start, clip.End)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return active, capacity
}
