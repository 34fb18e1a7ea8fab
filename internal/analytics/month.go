package analytics

import "time"

// TruncateMonth returns the first instant of t's calendar month in UTC.
func TruncateMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a month as "YYYY-MM" for grouping and display.
func MonthKey(m time.Time) string {
	return m.UTC().Format("2006-01")
}
