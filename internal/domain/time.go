package domain

import (
	"math"
	"time"
)

// Round1 rounds to one decimal place. Every persisted or returned score and
// macro value in the system goes through this.
func Round1(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(v*10) / 10
}

// DayBounds returns the inclusive calendar-day window [00:00:00.000,
// 23:59:59.999] containing t, in t's location. An event stamped at
// 23:59:59.999 belongs to the day; midnight of the next day does not.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// InDay reports whether ts falls inside the inclusive window [start, end].
func InDay(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}
