package progress

import "github.com/trezcool/dailysutra/core/program"

// FilterEntitled keeps the days & weeks the practitioner may currently edit.
// A week is kept when its first day is accessible. Settings are always kept.
func FilterEntitled(s State, canAccessDay func(day int) bool) State {
	out := Initial()
	for day, dp := range s.DayProgress {
		if program.ValidDay(day) && canAccessDay(day) {
			out.DayProgress[day] = dp
		}
	}
	for week, wp := range s.WeekProgress {
		if first, ok := program.FirstDayOfWeek(week); ok && canAccessDay(first) {
			out.WeekProgress[week] = wp
		}
	}
	if s.Settings.StartDate != nil {
		date := *s.Settings.StartDate
		out.Settings.StartDate = &date
	}
	return out
}

// ReplaceEntitled replaces the entitled days & weeks of `stored` with those of `incoming`.
// The entries the practitioner cannot access are left as stored. Incoming settings win.
func ReplaceEntitled(stored, incoming State, canAccessDay func(day int) bool) State {
	out := FilterEntitled(incoming, canAccessDay)
	for day, dp := range stored.DayProgress {
		if !canAccessDay(day) {
			out.DayProgress[day] = dp
		}
	}
	for week, wp := range stored.WeekProgress {
		if first, ok := program.FirstDayOfWeek(week); !ok || !canAccessDay(first) {
			out.WeekProgress[week] = wp
		}
	}
	return out
}

// Merge overlays `incoming` onto `base` per day & week key; incoming settings win.
func Merge(base, incoming State) State {
	out := base.Clone()
	for day, dp := range incoming.DayProgress {
		out.DayProgress[day] = dp
	}
	for week, wp := range incoming.WeekProgress {
		out.WeekProgress[week] = wp
	}
	out.Settings = incoming.Clone().Settings
	return out
}
