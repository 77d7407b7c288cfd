package uptime

import (
	"time"

	"storewatch/pkg/models"
)

// Interval is a UTC time span. Start and End are instants; an interval with
// End not after Start is empty.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Seconds returns the interval length in seconds, 0 for empty intervals.
func (iv Interval) Seconds() float64 {
	if iv.Empty() {
		return 0
	}
	return iv.End.Sub(iv.Start).Seconds()
}

// Empty reports whether the interval contains no time.
func (iv Interval) Empty() bool {
	return !iv.End.After(iv.Start)
}

// Clip returns the intersection of two intervals.
func (iv Interval) Clip(other Interval) Interval {
	out := iv
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

// ActiveSeconds estimates how long a store was active within
// [windowStart, windowEnd] given sparse point-in-time observations sorted
// ascending by timestamp. The slice may extend beyond the window; outside
// observations are only consulted when the window itself contains none.
//
// Status is flat-held before the first and after the last observation in the
// window. When two consecutive observations disagree, the transition is
// assumed to have happened at the midpoint between them. With no observation
// anywhere, the store is assumed inactive.
func ActiveSeconds(observations []models.StoreStatus, windowStart, windowEnd time.Time) float64 {
	if !windowEnd.After(windowStart) {
		return 0
	}

	lo := 0
	for lo < len(observations) && observations[lo].TimestampUTC.Before(windowStart) {
		lo++
	}
	hi := lo
	for hi < len(observations) && !observations[hi].TimestampUTC.After(windowEnd) {
		hi++
	}

	inside := observations[lo:hi]
	if len(inside) == 0 {
		if holdStatus(observations, windowStart, windowEnd) == models.StatusActive {
			return windowEnd.Sub(windowStart).Seconds()
		}
		return 0
	}

	var active float64

	first := inside[0]
	if first.Status == models.StatusActive {
		active += first.TimestampUTC.Sub(windowStart).Seconds()
	}

	for i := 0; i < len(inside)-1; i++ {
		a, b := inside[i], inside[i+1]
		span := b.TimestampUTC.Sub(a.TimestampUTC).Seconds()
		if a.Status == b.Status {
			if a.Status == models.StatusActive {
				active += span
			}
			continue
		}
		// statuses disagree: exactly one side of the midpoint is active
		active += span / 2
	}

	last := inside[len(inside)-1]
	if last.Status == models.StatusActive {
		active += windowEnd.Sub(last.TimestampUTC).Seconds()
	}

	return active
}

// InactiveSeconds is the window remainder once active time is accounted for.
func InactiveSeconds(observations []models.StoreStatus, windowStart, windowEnd time.Time) float64 {
	if !windowEnd.After(windowStart) {
		return 0
	}
	inactive := windowEnd.Sub(windowStart).Seconds() - ActiveSeconds(observations, windowStart, windowEnd)
	if inactive < 0 {
		return 0
	}
	return inactive
}

// holdStatus picks the status to assume for a window that contains no
// observations: the last known value before the window, falling back to the
// first one after it. With no evidence at all the store counts as inactive.
func holdStatus(observations []models.StoreStatus, windowStart, windowEnd time.Time) string {
	var before, after *models.StoreStatus
	for i := range observations {
		o := &observations[i]
		if o.TimestampUTC.Before(windowStart) {
			before = o
		} else if after == nil && o.TimestampUTC.After(windowEnd) {
			after = o
		}
	}
	if before != nil {
		return before.Status
	}
	if after != nil {
		return after.Status
	}
	return models.StatusInactive
}
