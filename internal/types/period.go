// Package types implements special types for the Quote Zero backend.
package types

import (
	"errors"
	"time"
)

// Period is a reporting granularity for quote analytics.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ErrInvalidPeriod = errors.New("period must be one of: day, week, month, year")

// ParsePeriod parses the string representation of a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	}

	return "", ErrInvalidPeriod
}

// String returns the string representation of the Period.
func (p Period) String() string {
	return string(p)
}

// LookbackStart returns the start of the fixed reporting window that
// ends at now: 30 days, 12 weeks, 12 months or 5 years.
func (p Period) LookbackStart(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -30)
	case PeriodWeek:
		return now.AddDate(0, 0, -12*7)
	case PeriodMonth:
		return now.AddDate(0, -12, 0)
	case PeriodYear:
		return now.AddDate(-5, 0, 0)
	}

	return now
}

// Interval is one calendar-aligned bucket of a reporting window.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the time instant lies in the interval.
// Both boundaries are inclusive.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Label returns the display label for the interval. The label is
// derived from the interval start only, so it is stable regardless
// of the bucket contents.
func (i Interval) Label(p Period) string {
	switch p {
	case PeriodDay, PeriodWeek:
		return i.Start.Format("02/01")
	case PeriodMonth:
		return i.Start.Format("Jan/06")
	case PeriodYear:
		return i.Start.Format("2006")
	}

	return i.Start.Format("2006-01-02")
}

// Intervals generates the ordered sequence of calendar-aligned
// intervals covering [LookbackStart(now), now]. weekStart selects the
// first day of the week for the week granularity.
func (p Period) Intervals(now time.Time, weekStart time.Weekday) []Interval {
	start := p.LookbackStart(now)

	var intervals []Interval
	for cursor := p.truncate(start, weekStart); !cursor.After(now); cursor = p.next(cursor) {
		intervals = append(intervals, Interval{
			Start: cursor,
			End:   p.next(cursor).Add(-time.Nanosecond),
		})
	}

	return intervals
}

// truncate aligns a time instant to the start of its calendar period.
func (p Period) truncate(t time.Time, weekStart time.Weekday) time.Time {
	year, month, day := t.Date()

	switch p {
	case PeriodDay:
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	case PeriodWeek:
		diff := int(t.Weekday()) - int(weekStart)
		if diff < 0 {
			diff += 7
		}
		return time.Date(year, month, day-diff, 0, 0, 0, 0, t.Location())
	case PeriodMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	case PeriodYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, t.Location())
	}

	return t
}

// next returns the start of the period following the one starting at t.
func (p Period) next(t time.Time) time.Time {
	switch p {
	case PeriodDay:
		return t.AddDate(0, 0, 1)
	case PeriodWeek:
		return t.AddDate(0, 0, 7)
	case PeriodMonth:
		return t.AddDate(0, 1, 0)
	case PeriodYear:
		return t.AddDate(1, 0, 0)
	}

	return t
}
