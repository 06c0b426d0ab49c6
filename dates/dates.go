// Package dates parses absolute and relative date expressions into day-granular
// ranges used for date comparisons in search queries.
//
// A parsed Value covers whole calendar days: an explicit date yields a one-day
// range, a relative keyword such as "last week" or "next month" yields the
// corresponding span. NextDay is the day after End, used to build half-open
// interval predicates (a calendar date with a stored time-of-day component is
// an interval, not a point).
package dates

import (
	"fmt"
	"strings"
	"time"
)

// ISO layout used for all emitted date strings. No time component.
const Layout = "2006-01-02"

// maxDate is the largest representable date. NextDay clamps here.
var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// acceptedLayouts are the explicit date/time formats Parse understands,
// tried in order.
var acceptedLayouts = []string{
	Layout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Value is an immutable day-granular date range.
// Invariant: Start <= End < NextDay, unless End is the maximum representable
// date, in which case NextDay == End.
type Value struct {
	Start   string
	End     string
	NextDay string
}

// Parse parses an explicit date string or a relative keyword, using the
// current local time as the reference for relative keywords.
func Parse(s string) (Value, error) {
	return ParseAt(s, time.Now())
}

// ParseAt is Parse with a fixed reference time, for deterministic evaluation.
func ParseAt(s string, now time.Time) (Value, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if start, end, ok := relativeRange(strings.ToLower(strings.TrimSpace(s)), day); ok {
		return newValue(start, end), nil
	}

	for _, layout := range acceptedLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return newValue(d, d), nil
	}

	return Value{}, fmt.Errorf("dates: unrecognized date expression %q", s)
}

// IsValid reports whether s parses as a date expression.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func newValue(start, end time.Time) Value {
	next := end.AddDate(0, 0, 1)
	if !end.Before(maxDate) {
		next = end
	}
	return Value{
		Start:   start.Format(Layout),
		End:     end.Format(Layout),
		NextDay: next.Format(Layout),
	}
}

// relativeRange maps a relative-date keyword to a concrete [start, end] span.
// Weeks start on Sunday. "past X" spans the trailing period ending today,
// while "last X" spans the previous calendar period.
func relativeRange(keyword string, today time.Time) (start, end time.Time, ok bool) {
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	switch keyword {
	case "today":
		return today, today, true
	case "tomorrow":
		d := today.AddDate(0, 0, 1)
		return d, d, true
	case "yesterday":
		d := today.AddDate(0, 0, -1)
		return d, d, true

	case "this week":
		return weekStart, weekStart.AddDate(0, 0, 6), true
	case "next week":
		s := weekStart.AddDate(0, 0, 7)
		return s, s.AddDate(0, 0, 6), true
	case "last week":
		s := weekStart.AddDate(0, 0, -7)
		return s, s.AddDate(0, 0, 6), true
	case "past week":
		return today.AddDate(0, 0, -6), today, true

	case "this month":
		return monthStart, monthStart.AddDate(0, 1, -1), true
	case "next month":
		s := monthStart.AddDate(0, 1, 0)
		return s, s.AddDate(0, 1, -1), true
	case "last month":
		s := monthStart.AddDate(0, -1, 0)
		return s, s.AddDate(0, 1, -1), true
	case "past month":
		return today.AddDate(0, -1, 0).AddDate(0, 0, 1), today, true

	case "this year":
		return yearStart, yearStart.AddDate(1, 0, -1), true
	case "next year":
		s := yearStart.AddDate(1, 0, 0)
		return s, s.AddDate(1, 0, -1), true
	case "last year":
		s := yearStart.AddDate(-1, 0, 0)
		return s, s.AddDate(1, 0, -1), true
	case "past year":
		return today.AddDate(-1, 0, 0).AddDate(0, 0, 1), today, true
	}

	return time.Time{}, time.Time{}, false
}
