package program

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseStartDate reads an ISO date (YYYY-MM-DD or a full RFC 3339 timestamp)
// and returns its calendar date in `loc`.
func parseStartDate(startDate string, loc *time.Location) (time.Time, bool) {
	startDate = strings.TrimSpace(startDate)
	if startDate == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateLayout, startDate, loc); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, startDate)
	if err != nil {
		return time.Time{}, false
	}
	return midnight(t.In(loc)), true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// CurrentDayNumber returns today's global day number given the practitioner's start date.
// The start date is day 1. It reports false if the start date is unset or invalid,
// or if `now` falls before the start date or after the last day.
func CurrentDayNumber(startDate string, now time.Time) (int, bool) {
	start, ok := parseStartDate(startDate, now.Location())
	if !ok {
		return 0, false
	}
	day := daysBetween(start, now) + 1
	if !ValidDay(day) {
		return 0, false
	}
	return day, true
}

// CurrentWeekAndDay returns the current week (1..52) and day within that week (1..7).
func CurrentWeekAndDay(startDate string, now time.Time) (week, dayIndex int, ok bool) {
	day, ok := CurrentDayNumber(startDate, now)
	if !ok {
		return 0, 0, false
	}
	week, _ = WeekForDay(day)
	dayIndex, _ = DayIndexInWeek(day)
	return week, dayIndex, true
}

// DateForDayNumber returns the calendar date of a global day number, in `loc`.
func DateForDayNumber(startDate string, day int, loc *time.Location) (time.Time, bool) {
	if !ValidDay(day) {
		return time.Time{}, false
	}
	start, ok := parseStartDate(startDate, loc)
	if !ok {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, day-1), true
}
