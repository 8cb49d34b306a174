package main

import (
	"strings"

	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
)

type WeekCmd struct {
	Show     WeekShowCmd     `cmd:"" default:"withargs" help:"Show a week, the current one by default."`
	Complete WeekCompleteCmd `cmd:"" help:"Toggle the completion of a week."`
	Enjoy    WeekEnjoyCmd    `cmd:"" help:"Toggle whether you enjoyed a week (enjoyed weeks get bookmarked)."`
	Bookmark WeekBookmarkCmd `cmd:"" help:"Toggle the bookmark of a week."`
	Reflect  WeekReflectCmd  `cmd:"" help:"Write the reflection of a week."`
}

func (c *Context) printWeek(week int, state progress.State) {
	w, _ := program.GetWeek(week)
	c.printf("Week %d: %s\n", w.Number, w.Theme)
	c.printf("Core sūtras: %s\n", w.CoreSutras)
	c.printf("Key idea: %s\n", w.KeyIdea)
	c.printf("Practice: %s\n", w.WeeklyPractice)

	wp := state.WeekProgress[week]
	var tags []string
	if wp.Completed {
		tags = append(tags, "completed")
	}
	if wp.Enjoyed {
		tags = append(tags, "enjoyed")
	}
	if wp.Bookmarked {
		tags = append(tags, "bookmarked")
	}
	if len(tags) > 0 {
		c.printf("\n[%s]\n", strings.Join(tags, ", "))
	}
	if strings.TrimSpace(wp.ReflectionNote) != "" {
		c.printf("\n%s\n", wp.ReflectionNote)
	}
}

func (c *Context) toggleWeek(week int, typ progress.ActionType) error {
	week, err := c.weekArg(week)
	if err != nil {
		return err
	}
	if err = c.checkWeek(week); err != nil {
		return err
	}
	state, err := c.dispatch(progress.Action{Type: typ, Week: week})
	if err != nil {
		return err
	}
	c.printWeek(week, state)
	return nil
}

type WeekShowCmd struct {
	Week int `arg:"" optional:"" help:"Week number (1-52)."`
}

func (cmd *WeekShowCmd) Run(c *Context) error {
	week, err := c.weekArg(cmd.Week)
	if err != nil {
		return err
	}
	if err = c.checkWeek(week); err != nil {
		return err
	}
	c.printWeek(week, c.journey().State())
	return nil
}

type WeekCompleteCmd struct {
	Week int `arg:"" optional:"" help:"Week number (1-52), the current one by default."`
}

func (cmd *WeekCompleteCmd) Run(c *Context) error {
	return c.toggleWeek(cmd.Week, progress.ToggleWeekCompleted)
}

type WeekEnjoyCmd struct {
	Week int `arg:"" optional:"" help:"Week number (1-52), the current one by default."`
}

func (cmd *WeekEnjoyCmd) Run(c *Context) error {
	return c.toggleWeek(cmd.Week, progress.ToggleWeekEnjoyed)
}

type WeekBookmarkCmd struct {
	Week int `arg:"" optional:"" help:"Week number (1-52), the current one by default."`
}

func (cmd *WeekBookmarkCmd) Run(c *Context) error {
	return c.toggleWeek(cmd.Week, progress.ToggleWeekBookmarked)
}

type WeekReflectCmd struct {
	Week int      `arg:"" help:"Week number (1-52)."`
	Text []string `arg:"" optional:"" help:"The reflection; an empty one clears it."`
}

func (cmd *WeekReflectCmd) Run(c *Context) error {
	week, err := c.weekArg(cmd.Week)
	if err != nil {
		return err
	}
	if err = c.checkWeek(week); err != nil {
		return err
	}
	if _, err = c.dispatch(progress.Action{Type: progress.UpdateWeekReflection, Week: week, Note: strings.Join(cmd.Text, " ")}); err != nil {
		return err
	}
	c.printf("Reflection saved for week %d.\n", week)
	return nil
}
