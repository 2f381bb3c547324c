// Package valueobject contains domain value objects for the Field Console system.
package valueobject

import (
	"testing"
	"time"
)

func TestToCalendarDate_NormalizesAcrossZones(t *testing.T) {
	// 2024-11-05 23:30 Dhaka time, expressed in three different zones.
	dhaka := time.FixedZone("Asia/Dhaka", 6*60*60)
	base := time.Date(2024, 11, 5, 23, 30, 0, 0, dhaka)

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-8", -8*60*60),
		time.FixedZone("UTC+12", 12*60*60),
	}

	want := NewCalendarDate(2024, time.November, 5)
	for _, zone := range zones {
		got := ToCalendarDate(base.In(zone))
		if !got.Equal(want) {
			t.Errorf("zone %v: got %v, want %v", zone, got, want)
		}
	}
}

func TestToCalendarDate_DayBoundary(t *testing.T) {
	// 18:30 UTC is 00:30 the next day in Dhaka.
	utc := time.Date(2024, 11, 5, 18, 30, 0, 0, time.UTC)

	got := ToCalendarDate(utc)
	want := NewCalendarDate(2024, time.November, 6)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CalendarDate
	}{
		{"plain date", "2024-11-05", NewCalendarDate(2024, time.November, 5)},
		{"datetime", "2024-11-05 14:30:00", NewCalendarDate(2024, time.November, 5)},
		{"rfc3339 utc evening crosses to next dhaka day", "2024-11-05T19:00:00Z", NewCalendarDate(2024, time.November, 6)},
		{"garbage", "not-a-date", CalendarDate{}},
		{"empty", "", CalendarDate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCalendarDate(tt.input)
			if tt.want.IsZero() {
				if !got.IsZero() {
					t.Errorf("expected invalid date, got %v", got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalendarDate_Equal(t *testing.T) {
	d := NewCalendarDate(2024, time.November, 5)

	if !d.Equal(NewCalendarDate(2024, time.November, 5)) {
		t.Error("expected equal dates to compare equal")
	}
	if d.Equal(NewCalendarDate(2024, time.November, 6)) {
		t.Error("expected different days to compare unequal")
	}
	if (CalendarDate{}).Equal(CalendarDate{}) {
		t.Error("invalid dates must not compare equal")
	}
}

func TestCalendarDate_WithinDays(t *testing.T) {
	d := NewCalendarDate(2024, time.November, 5)

	tests := []struct {
		name  string
		other CalendarDate
		n     int
		want  bool
	}{
		{"same day", NewCalendarDate(2024, time.November, 5), 0, true},
		{"three days apart within three", NewCalendarDate(2024, time.November, 8), 3, true},
		{"four days apart within three", NewCalendarDate(2024, time.November, 9), 3, false},
		{"across month boundary", NewCalendarDate(2024, time.October, 31), 5, true},
		{"invalid other", CalendarDate{}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.WithinDays(tt.other, tt.n); got != tt.want {
				t.Errorf("WithinDays(%v, %d) = %v, want %v", tt.other, tt.n, got, tt.want)
			}
		})
	}
}

func TestCalendarDate_DaysApart(t *testing.T) {
	a := NewCalendarDate(2024, time.November, 5)
	b := NewCalendarDate(2024, time.November, 8)

	if got := a.DaysApart(b); got != 3 {
		t.Errorf("DaysApart = %d, want 3", got)
	}
	if got := b.DaysApart(a); got != 3 {
		t.Errorf("DaysApart reversed = %d, want 3", got)
	}
	if got := a.DaysApart(CalendarDate{}); got != -1 {
		t.Errorf("DaysApart with invalid = %d, want -1", got)
	}
}
