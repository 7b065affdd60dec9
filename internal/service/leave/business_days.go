package leave

import "time"

// BusinessDays counts the weekdays in the inclusive range [start, end].
// Only the calendar dates are considered. An inverted range counts zero.
func BusinessDays(start, end time.Time) int {
	start = dateOnly(start)
	end = dateOnly(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
