package entity

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the dd/mm/yyyy format used by clinical staff.
const DisplayDateLayout = "02/01/2006"

// NormalizeDate drops the clock part and location so dates compare and persist as calendar days.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar day n days after t.
func AddDays(t time.Time, n int) time.Time {
	return NormalizeDate(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(NormalizeDate(b).Sub(NormalizeDate(a)).Hours() / 24)
}
