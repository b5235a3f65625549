// Package dashboard contains the transaction aggregation pipeline and the
// dashboard use cases built on top of it.
package dashboard

import "time"

const (
	// dayLabelLayout renders a bucket label such as "Jul 28".
	dayLabelLayout = "Jan 02"
	// monthLabelLayout renders a month caption such as "July 2025".
	monthLabelLayout = "January 2006"
)

// civilDate identifies a calendar day independently of wall-clock time.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civilDateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// StartOfDay returns the first instant of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// FormatDayLabel formats a bucket date for chart axes (e.g., "Jul 28").
func FormatDayLabel(day time.Time) string {
	return day.Format(dayLabelLayout)
}

// FormatMonthLabel formats the caption of a monthly view (e.g., "July 2025").
func FormatMonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}

// sameMonth reports whether a and b fall in the same calendar month and year.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
