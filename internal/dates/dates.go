// Package dates handles the calendar-day strings used as booking keys.
// Bookings are date-only and timezone-naive, so days travel as "2006-01-02"
// strings and only become time.Time values for arithmetic.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// Parse converts a day string into a time.Time at midnight UTC.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(Layout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates: parse %q: %w", day, err)
	}
	return t, nil
}

// Format renders t as a day string, dropping any time-of-day component.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Add returns the day n days after day. It panics if day is malformed;
// callers validate input days at their boundaries.
func Add(day string, n int) string {
	t, err := Parse(day)
	if err != nil {
		panic(err)
	}
	return Format(t.AddDate(0, 0, n))
}

// Valid reports whether day is a well-formed day string.
func Valid(day string) bool {
	_, err := Parse(day)
	return err == nil
}
