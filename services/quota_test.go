package services

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	at := func(h, m, s int) time.Time {
		return time.Date(2025, time.March, 14, h, m, s, 0, loc)
	}

	start := DayStart(at(13, 45, 12))
	if !start.Equal(at(0, 0, 0)) {
		t.Errorf("DayStart = %v, want local midnight", start)
	}
	if start.Location() != loc {
		t.Errorf("DayStart changed location to %v", start.Location())
	}
}

// A consumption at 23:59:59 and one at 00:00:01 the next day fall on
// different sides of the boundary, so both succeed even at limit 1.
func TestDayStartResetsAtMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	lateNight := time.Date(2025, time.March, 14, 23, 59, 59, 0, loc)
	earlyMorning := time.Date(2025, time.March, 15, 0, 0, 1, 0, loc)

	boundary := DayStart(earlyMorning)
	if !lateNight.Before(boundary) {
		t.Error("23:59:59 should precede the next day's boundary")
	}
	if earlyMorning.Before(boundary) {
		t.Error("00:00:01 should fall inside the new day")
	}
}

// A row stamped exactly at midnight counts toward the new day: the
// quota queries use used_at >= DayStart.
func TestDayStartBoundaryInclusive(t *testing.T) {
	loc := time.UTC
	midnight := time.Date(2025, time.March, 15, 0, 0, 0, 0, loc)

	if midnight.Before(DayStart(midnight)) {
		t.Error("midnight must not precede its own day start")
	}
	if !DayStart(midnight).Equal(midnight) {
		t.Errorf("DayStart(midnight) = %v, want %v", DayStart(midnight), midnight)
	}
}

func TestQuotaExceededErrorMessage(t *testing.T) {
	err := &QuotaExceededError{Limit: 5, Used: 5}
	if err.Error() != "daily limit reached (5/5)" {
		t.Errorf("Error() = %q", err.Error())
	}
}
