// Package reconciliation implements the collection-reconciliation engine.
package reconciliation

import (
	"testing"
	"time"

	"github.com/field-console/backend/internal/domain/valueobject"
)

func TestScheduleDates_Daily(t *testing.T) {
	// November 2024 has 30 days and 5 Fridays (1, 8, 15, 22, 29).
	dates := ScheduleDates(valueobject.ScheduleDaily, 0, 2024, time.November)

	if len(dates) != 25 {
		t.Fatalf("expected 25 dates, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Weekday() == time.Friday {
			t.Errorf("daily schedule must not include Fridays, got %v", d)
		}
	}
}

func TestScheduleDates_DailyThirtyDayMonthWithFourFridays(t *testing.T) {
	// September 2024 has 30 days and 4 Fridays (6, 13, 20, 27).
	dates := ScheduleDates(valueobject.ScheduleDaily, 0, 2024, time.September)

	if len(dates) != 26 {
		t.Fatalf("expected 26 dates, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Weekday() == time.Friday {
			t.Errorf("daily schedule must not include Fridays, got %v", d)
		}
	}
}

func TestScheduleDates_Weekly(t *testing.T) {
	dates := ScheduleDates(valueobject.ScheduleWeekly, time.Monday, 2024, time.November)

	// Mondays in November 2024: 4, 11, 18, 25.
	want := []int{4, 11, 18, 25}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i, d := range dates {
		if d.Day != want[i] {
			t.Errorf("date %d: got day %d, want %d", i, d.Day, want[i])
		}
		if d.Weekday() != time.Monday {
			t.Errorf("expected Monday, got %v", d.Weekday())
		}
	}
}

func TestScheduleDates_Monthly(t *testing.T) {
	dates := ScheduleDates(valueobject.ScheduleMonthly, 0, 2024, time.November)

	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	want := valueobject.NewCalendarDate(2024, time.November, 1)
	if !dates[0].Equal(want) {
		t.Errorf("got %v, want %v", dates[0], want)
	}
}

func TestScheduleDates_Ordered(t *testing.T) {
	dates := ScheduleDates(valueobject.ScheduleDaily, 0, 2024, time.November)
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Fatalf("dates out of order at %d: %v then %v", i, dates[i-1], dates[i])
		}
	}
}
