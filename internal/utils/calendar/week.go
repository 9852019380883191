// Package calendar holds the week arithmetic used by the allowance job.
package calendar

import "time"

// ISOWeekWindow returns the UTC bounds of the ISO-8601 week containing t.
// The week starts Monday 00:00:00 UTC; the window is [start, end).
func ISOWeekWindow(t time.Time) (start, end time.Time) {
	u := t.UTC()
	// time.Weekday has Sunday = 0; ISO weeks start on Monday.
	daysSinceMonday := (int(u.Weekday()) + 6) % 7
	start = time.Date(u.Year(), u.Month(), u.Day()-daysSinceMonday, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 0, 7)
	return start, end
}
