package progress

import (
	"strings"

	"github.com/trezcool/dailysutra/core/program"
)

type Stats struct {
	TotalDaysWithAnyData      int     `json:"total_days_with_any_data"`
	DaysPracticed             int     `json:"days_practiced"`
	PracticeCompletionPercent float64 `json:"practice_completion_percent"`
	CompletedWeeks            int     `json:"completed_weeks"`
	BookmarkedWeeks           int     `json:"bookmarked_weeks"`
}

// ComputeStats summarises the journey. Entries outside the curriculum are ignored.
func ComputeStats(s State) Stats {
	var stats Stats
	for day := 1; day <= program.TotalDays; day++ {
		dp, ok := s.DayProgress[day]
		if !ok {
			continue
		}
		if dp.DidPractice {
			stats.DaysPracticed++
		}
		if dp.DidPractice || strings.TrimSpace(dp.Note) != "" {
			stats.TotalDaysWithAnyData++
		}
	}
	for week := 1; week <= program.TotalWeeks; week++ {
		wp, ok := s.WeekProgress[week]
		if !ok {
			continue
		}
		if wp.Completed {
			stats.CompletedWeeks++
		}
		if wp.Bookmarked {
			stats.BookmarkedWeeks++
		}
	}
	stats.PracticeCompletionPercent = float64(stats.DaysPracticed) / float64(program.TotalDays) * 100
	return stats
}

type DayHistoryItem struct {
	DayNumber   int  `json:"day_number"`
	DidPractice bool `json:"did_practice"`
	HasNote     bool `json:"has_note"`
}

const DefaultHistoryCount = 10

// RecentDayHistory returns up to `count` recorded days, latest day first.
func RecentDayHistory(s State, count int) []DayHistoryItem {
	if count <= 0 {
		count = DefaultHistoryCount
	}
	items := make([]DayHistoryItem, 0, count)
	for day := program.TotalDays; day >= 1 && len(items) < count; day-- {
		dp, ok := s.DayProgress[day]
		if !ok {
			continue
		}
		items = append(items, DayHistoryItem{
			DayNumber:   day,
			DidPractice: dp.DidPractice,
			HasNote:     strings.TrimSpace(dp.Note) != "",
		})
	}
	return items
}

type Streak struct {
	Current  int  `json:"current"`
	Longest  int  `json:"longest"`
	IsActive bool `json:"is_active"` // today has been practiced
}

// CalculateStreak counts consecutive practiced days.
// The current streak ends today, or yesterday while today is not practiced yet.
// currentDay is 0 when the journey has not started (or is over).
func CalculateStreak(s State, currentDay int) Streak {
	practiced := func(day int) bool {
		dp, ok := s.DayProgress[day]
		return ok && dp.DidPractice
	}

	var streak Streak
	run := 0
	for day := 1; day <= program.TotalDays; day++ {
		if practiced(day) {
			run++
			if run > streak.Longest {
				streak.Longest = run
			}
		} else {
			run = 0
		}
	}

	if !program.ValidDay(currentDay) {
		return streak
	}
	streak.IsActive = practiced(currentDay)
	day := currentDay
	if !streak.IsActive {
		day--
	}
	for ; day >= 1 && practiced(day); day-- {
		streak.Current++
	}
	return streak
}
