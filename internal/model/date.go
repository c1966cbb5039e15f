package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the canonical wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. The zero value
// means "no date" and marshals to the empty string, matching the persisted
// document shape.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components, normalizing out-of-range
// values the way time.Date does (e.g. day 0 rolls back a month).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD string. The empty string parses to the
// zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d carries no date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(dateLayout)
}

// time returns d as a UTC midnight instant. Normalizing to midnight before
// any subtraction keeps day diffs free of partial-day off-by-ones.
func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.time().AddDate(0, 0, n))
}

// AddMonths returns the date n months after d, clamped by time.AddDate
// semantics. Used for moving the calendar cursor.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.time().AddDate(0, n, 0))
}

// DaysUntil returns the whole-day difference from d to other: positive when
// other is after d.
func (d Date) DaysUntil(other Date) int {
	return int(other.time().Sub(d.time()) / (24 * time.Hour))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.time().Before(other.time())
}

// Weekday returns the day of week for d.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// Format renders d with an arbitrary time layout; zero dates render as "".
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(layout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or "" when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", "", or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
