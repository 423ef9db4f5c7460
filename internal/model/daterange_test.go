package model

import (
	"testing"
	"time"
)

func TestDateRangeInclusiveBounds(t *testing.T) {
	r := ParseDateRange("2023-11-14", "2023-11-16")

	first := time.Date(2023, time.November, 14, 0, 0, 0, 0, time.Local)
	last := time.Date(2023, time.November, 16, 23, 59, 59, 0, time.Local)
	before := first.Add(-time.Second)
	after := last.Add(time.Second)

	if !r.Contains(first.UnixMilli()) {
		t.Error("midnight of the from-date excluded")
	}
	if !r.Contains(last.UnixMilli()) {
		t.Error("last second of the to-date excluded")
	}
	if r.Contains(before.UnixMilli()) {
		t.Error("instant before the range included")
	}
	if r.Contains(after.UnixMilli()) {
		t.Error("instant after the range included")
	}
}

func TestDateRangeTimeOfDayIgnored(t *testing.T) {
	// Bounds built from noon instants behave the same as midnight ones.
	r := NewDateRange(
		time.Date(2023, time.November, 14, 12, 30, 0, 0, time.Local),
		time.Date(2023, time.November, 14, 12, 30, 0, 0, time.Local),
	)
	morning := time.Date(2023, time.November, 14, 1, 0, 0, 0, time.Local)
	if !r.Contains(morning.UnixMilli()) {
		t.Error("same calendar date excluded because of time of day")
	}
}

func TestParseDateRangeFallbacks(t *testing.T) {
	r := ParseDateRange("", "not-a-date")

	wantFrom := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
	if !r.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", r.From, wantFrom)
	}
	y, m, d := time.Now().Date()
	wantTo := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if !r.To.Equal(wantTo) {
		t.Errorf("To = %v, want today at midnight", r.To)
	}
}

func TestDateRangeString(t *testing.T) {
	r := ParseDateRange("2023-01-05", "2023-02-10")
	if got := r.String(); got != "2023-01-05..2023-02-10" {
		t.Errorf("String() = %q", got)
	}
}
