package main

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
)

const dateLayout = "2006-01-02"

var (
	nowFunc = time.Now // mockable

	errNotStarted = errors.New("the journey has no start date yet: run `sutra start-date`")
	errOutOfRange = errors.New("today is outside the 52-week journey")
)

// currentDay returns today's day number of the journey.
func (c *Context) currentDay(state progress.State) (int, error) {
	if state.StartDate() == "" {
		return 0, errNotStarted
	}
	day, ok := program.CurrentDayNumber(state.StartDate(), c.now())
	if !ok {
		return 0, errOutOfRange
	}
	return day, nil
}

// dayArg returns the given day, or today's when none is given.
func (c *Context) dayArg(day int) (int, error) {
	if day == 0 {
		return c.currentDay(c.journey().State())
	}
	if !program.ValidDay(day) {
		return 0, errors.Errorf("day must be between 1 and %d", program.TotalDays)
	}
	return day, nil
}

// weekArg returns the given week, or the current one when none is given.
func (c *Context) weekArg(week int) (int, error) {
	if week == 0 {
		day, err := c.currentDay(c.journey().State())
		if err != nil {
			return 0, err
		}
		week, _ = program.WeekForDay(day)
		return week, nil
	}
	if !program.ValidWeek(week) {
		return 0, errors.Errorf("week must be between 1 and %d", program.TotalWeeks)
	}
	return week, nil
}

func (c *Context) checkDay(day int) error {
	if !c.journey().CanAccessDay(day) {
		return errors.Errorf("day %d is locked: the free trial covers the first 4 weeks, upgrade with `sutra status --upgrade`", day)
	}
	return nil
}

func (c *Context) checkWeek(week int) error {
	first, _ := program.FirstDayOfWeek(week)
	if !c.journey().CanAccessDay(first) {
		return errors.Errorf("week %d is locked: the free trial covers the first 4 weeks, upgrade with `sutra status --upgrade`", week)
	}
	return nil
}

func (c *Context) dispatch(action progress.Action) (progress.State, error) {
	state, err := c.journey().Dispatch(c, action)
	return state, errors.Wrap(err, "saving journey")
}

func (c *Context) printDay(day int, state progress.State) {
	d, _ := program.GetDay(day)
	c.printf("Day %d · Week %d, day %d of %d\n", d.Number, d.Week, d.DayIndex, program.DaysPerWeek)
	if date, ok := program.DateForDayNumber(state.StartDate(), day, c.Loc); ok {
		c.printf("%s\n", date.Format("Monday, January 2, 2006"))
	}
	c.printf("\n%s\n", d.Content.Theme)
	c.printf("Core sūtras: %s\n", d.Content.CoreSutras)
	c.printf("Key idea: %s\n", d.Content.KeyIdea)
	c.printf("Practice: %s\n\n", d.Content.WeeklyPractice)

	dp := state.DayProgress[day]
	if dp.DidPractice {
		c.printf("✓ Practiced\n")
	} else {
		c.printf("○ Not practiced yet\n")
	}
	if strings.TrimSpace(dp.Note) != "" {
		c.printf("\n%s\n", dp.Note)
	}
}

type TodayCmd struct{}

func (cmd *TodayCmd) Run(c *Context) error {
	state := c.journey().State()
	day, err := c.currentDay(state)
	switch err {
	case nil:
	case errNotStarted:
		c.printf("Your journey has not started yet. Begin with `sutra start-date today`.\n")
		return nil
	case errOutOfRange:
		start, _ := time.ParseInLocation(dateLayout, state.StartDate(), c.Loc)
		if c.now().Before(start) {
			c.printf("Your journey starts on %s.\n", start.Format("Monday, January 2, 2006"))
		} else {
			c.printf("You walked the whole 52 weeks. Run `sutra stats` to look back.\n")
		}
		return nil
	}
	if err = c.checkDay(day); err != nil {
		return err
	}
	c.printDay(day, state)
	return nil
}

type DayCmd struct {
	Day int `arg:"" help:"Day number (1-364)."`
}

func (cmd *DayCmd) Run(c *Context) error {
	day, err := c.dayArg(cmd.Day)
	if err != nil {
		return err
	}
	if err = c.checkDay(day); err != nil {
		return err
	}
	c.printDay(day, c.journey().State())
	return nil
}

type PracticeCmd struct {
	Day int `arg:"" optional:"" help:"Day number (1-364), today by default."`
}

func (cmd *PracticeCmd) Run(c *Context) error {
	day, err := c.dayArg(cmd.Day)
	if err != nil {
		return err
	}
	if err = c.checkDay(day); err != nil {
		return err
	}
	state, err := c.dispatch(progress.Action{Type: progress.ToggleDayPractice, Day: day})
	if err != nil {
		return err
	}
	if state.DayProgress[day].DidPractice {
		c.printf("Day %d: practiced ✓\n", day)
	} else {
		c.printf("Day %d: practice unchecked\n", day)
	}
	return nil
}

type NoteCmd struct {
	Day  int      `arg:"" help:"Day number (1-364)."`
	Text []string `arg:"" optional:"" help:"The note; an empty note clears it."`
}

func (cmd *NoteCmd) Run(c *Context) error {
	day, err := c.dayArg(cmd.Day)
	if err != nil {
		return err
	}
	if err = c.checkDay(day); err != nil {
		return err
	}
	if _, err = c.dispatch(progress.Action{Type: progress.UpdateDayNote, Day: day, Note: strings.Join(cmd.Text, " ")}); err != nil {
		return err
	}
	c.printf("Note saved for day %d.\n", day)
	return nil
}

type StartDateCmd struct {
	Date  string `arg:"" optional:"" default:"today" help:"YYYY-MM-DD or 'today'."`
	Clear bool   `help:"Remove the start date."`
}

func (cmd *StartDateCmd) Run(c *Context) error {
	if cmd.Clear {
		if _, err := c.dispatch(progress.Action{Type: progress.SetStartDate}); err != nil {
			return err
		}
		c.printf("Start date cleared.\n")
		return nil
	}

	date := cmd.Date
	if date == "today" {
		date = c.now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return errors.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", cmd.Date)
	}
	if _, err := c.dispatch(progress.Action{Type: progress.SetStartDate, StartDate: &date}); err != nil {
		return err
	}
	c.printf("Journey starts on %s.\n", date)
	return nil
}

type ExportCmd struct {
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout."`
}

func (cmd *ExportCmd) Run(c *Context) error {
	data, err := progress.Export(c.journey().State())
	if err != nil {
		return err
	}
	if cmd.Output == "" {
		c.printf("%s\n", data)
		return nil
	}
	if err = os.WriteFile(cmd.Output, data, 0o600); err != nil {
		return errors.Wrap(err, "writing export file")
	}
	c.printf("Journey exported to %s\n", cmd.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"An export file."`
}

func (cmd *ImportCmd) Run(c *Context) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return errors.Wrap(err, "reading export file")
	}
	state, err := progress.Import(data)
	if err != nil {
		return err
	}
	if _, err = c.dispatch(progress.Action{Type: progress.Hydrate, State: &state}); err != nil {
		return err
	}
	c.printf("Journey imported: %d day(s), %d week(s).\n", len(state.DayProgress), len(state.WeekProgress))
	return nil
}

type ResetCmd struct {
	Yes bool `help:"Confirm erasing every check-in, note & reflection."`
}

func (cmd *ResetCmd) Run(c *Context) error {
	if !cmd.Yes {
		return errors.New("this erases the whole journey: run again with --yes to confirm")
	}
	if _, err := c.dispatch(progress.Action{Type: progress.ResetAll}); err != nil {
		return err
	}
	c.printf("Journey erased.\n")
	return nil
}
