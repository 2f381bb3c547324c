// Package valueobject contains domain value objects for the Field Console system.
package valueobject

// ScheduleMode is a collector's visiting schedule for a member area.
type ScheduleMode string

const (
	ScheduleDaily   ScheduleMode = "daily"
	ScheduleWeekly  ScheduleMode = "weekly"
	ScheduleMonthly ScheduleMode = "monthly"
)

// Valid reports whether the mode is one of the known schedule modes.
func (m ScheduleMode) Valid() bool {
	switch m {
	case ScheduleDaily, ScheduleWeekly, ScheduleMonthly:
		return true
	}
	return false
}
