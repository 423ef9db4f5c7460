package model

import (
	"fmt"
	"time"
)

// DateRange is an inclusive [From, To] pair of calendar dates. Both
// ends are normalized to local midnight; time-of-day never enters the
// comparison. A message belongs to the range when its timestamp,
// truncated to the local calendar date, falls inside the closed
// interval.
type DateRange struct {
	From time.Time
	To   time.Time
}

const dateLayout = "2006-01-02"

// NewDateRange builds a range from two calendar dates, normalizing both
// to local midnight.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: truncateToDate(from), To: truncateToDate(to)}
}

// ParseDateRange parses "YYYY-MM-DD" bounds. An unparsable or empty
// from-date falls back to 2000-01-01, an unparsable or empty to-date to
// today. This is the single normalization point for date input; nothing
// past the config boundary deals with raw strings.
func ParseDateRange(from, to string) DateRange {
	f, err := time.ParseInLocation(dateLayout, from, time.Local)
	if err != nil {
		f = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
	}
	t, err := time.ParseInLocation(dateLayout, to, time.Local)
	if err != nil {
		t = time.Now()
	}
	return NewDateRange(f, t)
}

// Contains reports whether the epoch-millisecond timestamp falls on a
// calendar date inside the range, boundaries included.
func (r DateRange) Contains(timestampMs int64) bool {
	d := truncateToDate(time.UnixMilli(timestampMs).In(time.Local))
	return !d.Before(r.From) && !d.After(r.To)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.From.Format(dateLayout), r.To.Format(dateLayout))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
