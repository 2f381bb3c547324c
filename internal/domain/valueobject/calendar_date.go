// Package valueobject contains domain value objects for the Field Console system.
package valueobject

import (
	"fmt"
	"time"
)

// bdZone is the canonical zone for calendar-day comparison. Bangladesh has a
// fixed UTC+6 offset and no daylight saving, so a fixed zone is exact.
var bdZone = time.FixedZone("Asia/Dhaka", 6*60*60)

// CalendarDate is a timezone-normalized calendar day. The zero value is
// invalid; callers must check IsZero before comparing.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ToCalendarDate normalizes a timestamp to the Bangladesh calendar day it
// falls on. The result is independent of the timestamp's own location.
func ToCalendarDate(t time.Time) CalendarDate {
	if t.IsZero() {
		return CalendarDate{}
	}
	local := t.In(bdZone)
	return CalendarDate{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// calendarDateLayouts are the accepted textual date formats, tried in order.
var calendarDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCalendarDate parses a date string and normalizes it to a Bangladesh
// calendar day. Unparseable input yields the zero value, never an error.
func ParseCalendarDate(value string) CalendarDate {
	if value == "" {
		return CalendarDate{}
	}
	for _, layout := range calendarDateLayouts {
		if t, err := time.ParseInLocation(layout, value, bdZone); err == nil {
			return ToCalendarDate(t)
		}
	}
	return CalendarDate{}
}

// NewCalendarDate builds a CalendarDate from its components.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is the invalid zero value.
func (d CalendarDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Equal reports exact calendar-day equality. An invalid date equals nothing,
// including another invalid date.
func (d CalendarDate) Equal(other CalendarDate) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// WithinDays reports whether the calendar-day distance to other is at most n.
// Invalid dates are never within range of anything.
func (d CalendarDate) WithinDays(other CalendarDate, n int) bool {
	if d.IsZero() || other.IsZero() || n < 0 {
		return false
	}
	diff := d.epochDays() - other.epochDays()
	if diff < 0 {
		diff = -diff
	}
	return diff <= int64(n)
}

// Before reports whether d falls strictly before other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.epochDays() < other.epochDays()
}

// After reports whether d falls strictly after other.
func (d CalendarDate) After(other CalendarDate) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.epochDays() > other.epochDays()
}

// DaysApart returns the absolute calendar-day distance to other, or -1 when
// either date is invalid.
func (d CalendarDate) DaysApart(other CalendarDate) int {
	if d.IsZero() || other.IsZero() {
		return -1
	}
	diff := d.epochDays() - other.epochDays()
	if diff < 0 {
		diff = -diff
	}
	return int(diff)
}

// Time returns midnight of the calendar day in the Bangladesh zone.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, bdZone)
}

// Weekday returns the weekday of the calendar day.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the calendar day n days after d.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return ToCalendarDate(d.Time().AddDate(0, 0, n))
}

// String formats the date as YYYY-MM-DD, or "invalid" for the zero value.
func (d CalendarDate) String() string {
	if d.IsZero() {
		return "invalid"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// epochDays counts whole days since the Unix epoch for the calendar day.
// Using UTC midnight keeps the count zone-independent.
func (d CalendarDate) epochDays() int64 {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Unix() / (24 * 60 * 60)
}
