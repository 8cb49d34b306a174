package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/share"
)

type StatsCmd struct{}

func (cmd *StatsCmd) Run(c *Context) error {
	state := c.journey().State()
	stats := progress.ComputeStats(state)
	current, _ := program.CurrentDayNumber(state.StartDate(), c.now())
	streak := progress.CalculateStreak(state, current)

	c.printf("Days practiced: %d / %d (%.1f%%)\n", stats.DaysPracticed, program.TotalDays, stats.PracticeCompletionPercent)
	c.printf("Days with entries: %d\n", stats.TotalDaysWithAnyData)
	c.printf("Weeks completed: %d / %d\n", stats.CompletedWeeks, program.TotalWeeks)
	c.printf("Bookmarked weeks: %d\n", stats.BookmarkedWeeks)
	c.printf("Current streak: %d day(s)\n", streak.Current)
	c.printf("Longest streak: %d day(s)\n", streak.Longest)
	return nil
}

type HistoryCmd struct {
	Count int `short:"n" default:"10" help:"Number of days to list."`
}

func (cmd *HistoryCmd) Run(c *Context) error {
	items := progress.RecentDayHistory(c.journey().State(), cmd.Count)
	if len(items) == 0 {
		c.printf("Nothing recorded yet.\n")
		return nil
	}
	for _, item := range items {
		mark := "○"
		if item.DidPractice {
			mark = "✓"
		}
		note := ""
		if item.HasNote {
			note = " ✎"
		}
		week, _ := program.WeekForDay(item.DayNumber)
		c.printf("%s Day %d (week %d)%s\n", mark, item.DayNumber, week, note)
	}
	return nil
}

var errNothingToShare = errors.New("nothing recorded to share")

type ShareCmd struct {
	Day      ShareDayCmd      `cmd:"" help:"Share the note of a day."`
	Week     ShareWeekCmd     `cmd:"" help:"Share the reflection of a week."`
	Progress ShareProgressCmd `cmd:"" help:"Share the journey progress."`
}

type ShareDayCmd struct {
	Day int `arg:"" optional:"" help:"Day number (1-364), today by default."`
}

func (cmd *ShareDayCmd) Run(c *Context) error {
	day, err := c.dayArg(cmd.Day)
	if err != nil {
		return err
	}
	state := c.journey().State()
	dp, ok := state.DayProgress[day]
	if !ok {
		return errNothingToShare
	}
	var dateLabel string
	if date, ok := program.DateForDayNumber(state.StartDate(), day, c.Loc); ok {
		dateLabel = date.Format("Monday, January 2, 2006")
	}
	dp.Note = share.StripMarkdown(dp.Note)
	text, _ := share.DayNote(day, dateLabel, dp)
	c.printf("%s\n", text)
	return nil
}

type ShareWeekCmd struct {
	Week int `arg:"" optional:"" help:"Week number (1-52), the current one by default."`
}

func (cmd *ShareWeekCmd) Run(c *Context) error {
	week, err := c.weekArg(cmd.Week)
	if err != nil {
		return err
	}
	wp, ok := c.journey().State().WeekProgress[week]
	if !ok {
		return errNothingToShare
	}
	wp.Week = week
	wp.ReflectionNote = share.StripMarkdown(wp.ReflectionNote)
	text, _ := share.WeekReflection(wp)
	c.printf("%s\n", text)
	return nil
}

type ShareProgressCmd struct{}

func (cmd *ShareProgressCmd) Run(c *Context) error {
	state := c.journey().State()
	c.printf("%s\n", share.Progress(progress.ComputeStats(state), state.StartDate()))
	return nil
}
