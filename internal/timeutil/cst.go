package timeutil

import (
	"time"
)

// CST is the Mexico City time zone (UTC-6, DST retired in 2022).
// Dashboard day buckets and month windows are computed on this calendar.
var CST *time.Location

func init() {
	var err error
	CST, err = time.LoadLocation("America/Mexico_City")
	if err != nil {
		// Fallback: create fixed zone if America/Mexico_City not available
		CST = time.FixedZone("CST", -6*60*60) // UTC-6
	}
}

// Now returns the current time in CST
func Now() time.Time {
	return time.Now().In(CST)
}

// ToCST converts any time to CST
func ToCST(t time.Time) time.Time {
	return t.In(CST)
}

// ParseInCST parses a time string and returns it in CST
func ParseInCST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, CST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in CST for the given time
func StartOfDay(t time.Time) time.Time {
	cst := t.In(CST)
	return time.Date(cst.Year(), cst.Month(), cst.Day(), 0, 0, 0, 0, CST)
}

// EndOfDay returns the end of day (23:59:59.999999999) in CST for the given time
func EndOfDay(t time.Time) time.Time {
	cst := t.In(CST)
	return time.Date(cst.Year(), cst.Month(), cst.Day(), 23, 59, 59, 999999999, CST)
}

// StartOfMonth returns the first instant of the month containing t
func StartOfMonth(t time.Time) time.Time {
	cst := t.In(CST)
	return time.Date(cst.Year(), cst.Month(), 1, 0, 0, 0, 0, CST)
}

// StartOfPriorMonth returns the first instant of the month before the one containing t
func StartOfPriorMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, -1, 0)
}

// SameDay reports whether a and b fall on the same CST calendar day
func SameDay(a, b time.Time) bool {
	a, b = a.In(CST), b.In(CST)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Common layouts for CST formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
