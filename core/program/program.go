// Package program holds the 52-week curriculum and the calendar arithmetic
// mapping a practitioner's start date to day and week numbers.
package program

const (
	DaysPerWeek = 7
	TotalWeeks  = 52
	TotalDays   = DaysPerWeek * TotalWeeks
)

// Week is one entry of the curriculum.
type Week struct {
	Number         int    `json:"week"`
	Theme          string `json:"theme"`
	CoreSutras     string `json:"core_sutras"`
	KeyIdea        string `json:"key_idea"`
	WeeklyPractice string `json:"weekly_practice"`
}

// Weeks returns a copy of the whole curriculum, ordered by week.
func Weeks() []Week {
	all := make([]Week, TotalWeeks)
	copy(all, weeks[:])
	return all
}

// GetWeek returns the curriculum entry of `week` (1..52).
func GetWeek(week int) (Week, bool) {
	if !ValidWeek(week) {
		return Week{}, false
	}
	return weeks[week-1], true
}

func ValidWeek(week int) bool { return week >= 1 && week <= TotalWeeks }
func ValidDay(day int) bool   { return day >= 1 && day <= TotalDays }

// WeekForDay returns the week number of a global day number (1..364).
func WeekForDay(day int) (int, bool) {
	if !ValidDay(day) {
		return 0, false
	}
	return (day-1)/DaysPerWeek + 1, true
}

// DayIndexInWeek returns the position (1..7) of a global day number within its week.
func DayIndexInWeek(day int) (int, bool) {
	if !ValidDay(day) {
		return 0, false
	}
	return (day-1)%DaysPerWeek + 1, true
}

// GlobalDayNumber is the inverse of WeekForDay & DayIndexInWeek.
func GlobalDayNumber(week, dayIndex int) (int, bool) {
	if !ValidWeek(week) || dayIndex < 1 || dayIndex > DaysPerWeek {
		return 0, false
	}
	return (week-1)*DaysPerWeek + dayIndex, true
}

// FirstDayOfWeek returns the global day number of the first day of `week`.
func FirstDayOfWeek(week int) (int, bool) {
	return GlobalDayNumber(week, 1)
}

// Day describes a global day number & its curriculum context.
type Day struct {
	Number   int  `json:"day_number"`
	Week     int  `json:"week"`
	DayIndex int  `json:"day_in_week"`
	Content  Week `json:"content"`
}

func GetDay(day int) (Day, bool) {
	week, ok := WeekForDay(day)
	if !ok {
		return Day{}, false
	}
	idx, _ := DayIndexInWeek(day)
	content, _ := GetWeek(week)
	return Day{Number: day, Week: week, DayIndex: idx, Content: content}, true
}
