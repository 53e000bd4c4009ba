package daterange

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when calendar inputs do not form a valid range.
var ErrInvalidRange = errors.New("invalid date range")

// Range is an inclusive [Start, End] pair of timezone-aware instants.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, inclusive on both ends.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

const defaultWindow = 7 * 24 * time.Hour

// Resolve computes the inclusive range covered by a run. With all-zero
// calendar inputs it is the trailing 7-day window ending now. Explicit inputs
// give [start of startDay, end of endDay] in the given month; a zero year
// means the current year, a zero startDay means the 1st, and a zero endDay
// means the last day of the month.
func Resolve(year, month, startDay, endDay int, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.Local
	}

	if year == 0 && month == 0 && startDay == 0 && endDay == 0 {
		now := time.Now().In(loc)
		return Range{Start: now.Add(-defaultWindow), End: now}, nil
	}

	if month < 1 || month > 12 {
		return Range{}, fmt.Errorf("%w: month %d is not in 1-12", ErrInvalidRange, month)
	}
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	last := lastDayOfMonth(year, time.Month(month))
	if startDay == 0 {
		startDay = 1
	}
	if endDay == 0 {
		endDay = last
	}
	if endDay < startDay {
		return Range{}, fmt.Errorf("%w: end day %d precedes start day %d", ErrInvalidRange, endDay, startDay)
	}
	if startDay < 1 || endDay > last {
		return Range{}, fmt.Errorf("%w: days %d-%d are not in 1-%d for %d-%02d", ErrInvalidRange, startDay, endDay, last, year, month)
	}

	start := time.Date(year, time.Month(month), startDay, 0, 0, 0, 0, loc)
	end := time.Date(year, time.Month(month), endDay, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return Range{Start: start, End: end}, nil
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
