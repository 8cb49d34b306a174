// Package progress holds a practitioner's journey state and the pure reducer mutating it.
package progress

import (
	"github.com/trezcool/dailysutra/core/program"
)

// DayProgress is the check-in of a single day of the curriculum.
type DayProgress struct {
	DayNumber   int    `json:"dayNumber"`
	DidPractice bool   `json:"didPractice"`
	Note        string `json:"note"`
}

// WeekProgress is the reflection of a single week of the curriculum.
type WeekProgress struct {
	Week           int    `json:"week"`
	Completed      bool   `json:"completed"`
	Enjoyed        bool   `json:"enjoyed"`
	Bookmarked     bool   `json:"bookmarked"`
	ReflectionNote string `json:"reflectionNote"`
}

type Settings struct {
	StartDate *string `json:"startDate"` // YYYY-MM-DD
}

// State is the whole journey of a practitioner.
// Its JSON form is also the export file format.
type State struct {
	DayProgress  map[int]DayProgress  `json:"dayProgress"`
	WeekProgress map[int]WeekProgress `json:"weekProgress"`
	Settings     Settings             `json:"settings"`
}

// Initial returns the empty state.
func Initial() State {
	return State{
		DayProgress:  make(map[int]DayProgress),
		WeekProgress: make(map[int]WeekProgress),
	}
}

// Clone returns a deep copy of s. Nil maps are replaced by empty ones.
func (s State) Clone() State {
	c := Initial()
	for k, v := range s.DayProgress {
		c.DayProgress[k] = v
	}
	for k, v := range s.WeekProgress {
		c.WeekProgress[k] = v
	}
	if s.Settings.StartDate != nil {
		date := *s.Settings.StartDate
		c.Settings.StartDate = &date
	}
	return c
}

// StartDate returns the start date or "" when unset.
func (s State) StartDate() string {
	if s.Settings.StartDate == nil {
		return ""
	}
	return *s.Settings.StartDate
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > program.TotalDays {
		return program.TotalDays
	}
	return day
}

func clampWeek(week int) int {
	if week < 1 {
		return 1
	}
	if week > program.TotalWeeks {
		return program.TotalWeeks
	}
	return week
}
