// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"time"

	"github.com/field-console/backend/internal/domain/valueobject"
)

// ScheduleDates produces the ordered, de-duplicated list of collection
// dates to display as sheet columns for one month. It is independent of and
// precedes attribution; it knows nothing about transactions.
//
// Daily mode excludes Fridays (weekly holiday). Weekly mode includes every
// occurrence of the given weekday in the month. Monthly mode is the first
// day of the month.
func ScheduleDates(mode valueobject.ScheduleMode, weekday time.Weekday, year int, month time.Month) []valueobject.CalendarDate {
	first := valueobject.NewCalendarDate(year, month, 1)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	var dates []valueobject.CalendarDate
	switch mode {
	case valueobject.ScheduleDaily:
		for day := 1; day <= daysInMonth; day++ {
			d := valueobject.NewCalendarDate(year, month, day)
			if d.Weekday() == time.Friday {
				continue
			}
			dates = append(dates, d)
		}
	case valueobject.ScheduleWeekly:
		for day := 1; day <= daysInMonth; day++ {
			d := valueobject.NewCalendarDate(year, month, day)
			if d.Weekday() == weekday {
				dates = append(dates, d)
			}
		}
	case valueobject.ScheduleMonthly:
		dates = append(dates, first)
	}
	return dates
}
