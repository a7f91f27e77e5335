// utils/dates.go
package utils

import "time"

// DayFormat is the canonical layout for attendance dates. Attendance rows
// store the calendar day as a plain string so equality filters work without
// range queries.
const DayFormat = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from start to end, negative when end is
// earlier. Both sides are normalized to UTC first: stored dates are UTC
// midnights (ParseDay) while callers pass local wall-clock times, and mixing
// locations would truncate the difference by a day.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start.UTC())
	end = BeginningOfDay(end.UTC())
	return int(end.Sub(start).Hours() / 24)
}

func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into a midnight UTC time.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}
