package domain

import (
	"testing"
	"time"
)

// helper: build a time in given tz and return its UTC
func mustLocalUTC(t *testing.T, tz string, y int, m time.Month, d, hh, mm, ss int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return time.Date(y, m, d, hh, mm, ss, 0, loc).UTC()
}

func TestTargetToday_UsesLocalCalendarDay(t *testing.T) {
	// 2025-05-05 23:30 UTC is already 2025-05-06 08:30 in Tokyo.
	nowUTC := time.Date(2025, time.May, 5, 23, 30, 0, 0, time.UTC)
	local, err := InLocation(nowUTC, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("in location: %v", err)
	}
	target := TargetToday(local, Slot{Hour: 8, Minute: 0})
	if got := LocalDate(target); got != "2025-05-06" {
		t.Fatalf("want 2025-05-06, got %s", got)
	}
	if got := target.Format("15:04"); got != "08:00" {
		t.Fatalf("want 08:00, got %s", got)
	}
}

func TestWithinWindow(t *testing.T) {
	target := mustLocalUTC(t, "Europe/Moscow", 2025, time.May, 5, 8, 0, 0)
	cases := []struct {
		offset time.Duration
		want   bool
	}{
		{0, true},
		{15 * time.Second, true},
		{-59 * time.Second, true},
		{59 * time.Second, true},
		{60 * time.Second, false},
		{-60 * time.Second, false},
		{5 * time.Minute, false},
	}
	for _, c := range cases {
		if got := WithinWindow(target.Add(c.offset), target, time.Minute); got != c.want {
			t.Fatalf("offset %s: want %v, got %v", c.offset, c.want, got)
		}
	}
}

func TestInLocation_InvalidZoneFallsBackToUTC(t *testing.T) {
	nowUTC := time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC)
	local, err := InLocation(nowUTC, "Mars/Olympus")
	if err == nil {
		t.Fatalf("expected error for unknown zone")
	}
	if local.Location() != time.UTC || !local.Equal(nowUTC) {
		t.Fatalf("want UTC fallback, got %v", local)
	}
}

func TestTargetToday_SpringForwardGapResolves(t *testing.T) {
	// 02:30 does not exist in New York on 2025-03-09.
	nowUTC := mustLocalUTC(t, "America/New_York", 2025, time.March, 9, 1, 0, 0)
	local, _ := InLocation(nowUTC, "America/New_York")
	target := TargetToday(local, Slot{Hour: 2, Minute: 30})
	if LocalDate(target) != "2025-03-09" {
		t.Fatalf("target left the calendar day: %v", target)
	}
	if target.Hour() != 1 && target.Hour() != 3 {
		t.Fatalf("gap time should normalize next to the transition, got %v", target)
	}
}
