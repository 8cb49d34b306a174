// Package share formats journey entries & reading material as plain text for sharing.
package share

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
)

const brandedFooter = "\n\n— Shared from DailySutra.app\nhttps://dailysutra.app\n\nA 52-week journey through the Yoga Sūtras"

var mdReplacements = []struct {
	re   *regexp.Regexp
	repl string
	loop bool
}{
	{re: regexp.MustCompile("(?s)```.*?```")},
	{re: regexp.MustCompile("`([^`]+)`"), repl: "$1"},
	{re: regexp.MustCompile(`\*\*([^*]+?)\*\*`), repl: "$1", loop: true},
	{re: regexp.MustCompile(`__([^_]+?)__`), repl: "$1", loop: true},
	{re: regexp.MustCompile(`\*([^*\n]+?)\*`), repl: "$1", loop: true},
	{re: regexp.MustCompile(`_([^_\n]+?)_`), repl: "$1", loop: true},
	{re: regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), repl: "$1"},
	{re: regexp.MustCompile(`(?m)^#{1,6}\s+`)},
	{re: regexp.MustCompile(`(?m)^---+$`)},
	{re: regexp.MustCompile(`(?m)^[ \t]*[-*+]\s+`)},
	{re: regexp.MustCompile(`(?m)^[ \t]*\d+\.\s+`)},
	{re: regexp.MustCompile(`\n{3,}`), repl: "\n\n"},
	{re: regexp.MustCompile(`[ \t]+`), repl: " "},
}

// StripMarkdown turns markdown into plain text, keeping paragraph breaks.
func StripMarkdown(text string) string {
	for _, r := range mdReplacements {
		for {
			next := r.re.ReplaceAllString(text, r.repl)
			if next == text || !r.loop {
				text = next
				break
			}
			text = next
		}
	}
	return strings.TrimSpace(text)
}

// DayNote formats a day's note for sharing. dateLabel may be empty.
func DayNote(day int, dateLabel string, dp progress.DayProgress) (string, bool) {
	d, ok := program.GetDay(day)
	if !ok {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Week %d: %s\n", d.Week, d.Content.Theme)
	if dateLabel != "" {
		fmt.Fprintf(&b, "Day %d • %s\n", d.DayIndex, dateLabel)
	} else {
		fmt.Fprintf(&b, "Day %d\n", d.DayIndex)
	}
	b.WriteString("\n")
	if dp.DidPractice {
		b.WriteString("✓ Practiced\n\n")
	}
	b.WriteString(dp.Note)
	b.WriteString(brandedFooter)
	return b.String(), true
}

// WeekReflection formats a week's reflection for sharing.
func WeekReflection(wp progress.WeekProgress) (string, bool) {
	w, ok := program.GetWeek(wp.Week)
	if !ok {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Week %d: %s\n", w.Number, w.Theme)
	b.WriteString("Weekly Reflection\n\n")

	var tags []string
	if wp.Completed {
		tags = append(tags, "Completed")
	}
	if wp.Enjoyed {
		tags = append(tags, "Enjoyed")
	}
	if wp.Bookmarked {
		tags = append(tags, "Bookmarked")
	}
	if len(tags) > 0 {
		b.WriteString(strings.Join(tags, " • ") + "\n\n")
	}
	b.WriteString(wp.ReflectionNote)
	b.WriteString(brandedFooter)
	return b.String(), true
}

// Progress formats the journey summary for sharing.
func Progress(stats progress.Stats, startDate string) string {
	var b strings.Builder
	b.WriteString("📿 DailySutra.app Journey Progress\n\n")
	fmt.Fprintf(&b, "Days practiced: %d / %d\n", stats.DaysPracticed, program.TotalDays)
	fmt.Fprintf(&b, "Weeks completed: %d / %d\n", stats.CompletedWeeks, program.TotalWeeks)
	fmt.Fprintf(&b, "Practice completion: %.1f%%\n", stats.PracticeCompletionPercent)
	if stats.BookmarkedWeeks > 0 {
		fmt.Fprintf(&b, "Bookmarked weeks: %d\n", stats.BookmarkedWeeks)
	}
	if stats.TotalDaysWithAnyData > 0 {
		fmt.Fprintf(&b, "Days with notes: %d\n", stats.TotalDaysWithAnyData)
	}
	if start, err := time.Parse("2006-01-02", startDate); err == nil {
		fmt.Fprintf(&b, "\nJourney started: %s\n", start.Format("January 2, 2006"))
	}

	switch {
	case stats.CompletedWeeks >= 52:
		b.WriteString("\n🎉 Congratulations! You've completed the full 52-week journey through the Yoga Sūtras.\n")
	case stats.CompletedWeeks >= 26:
		b.WriteString("\n✨ You're halfway through your journey. Keep going!\n")
	case stats.CompletedWeeks >= 13:
		b.WriteString("\n🌱 You've completed the first quarter. Well done!\n")
	case stats.DaysPracticed > 0:
		b.WriteString("\n🌿 Your practice journey continues. Every day matters.\n")
	}
	b.WriteString(brandedFooter)
	return b.String()
}

// Sutra formats a sūtra for sharing.
func Sutra(book string, number int, title, text, commentary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", book, number)
	if title != "" {
		b.WriteString(": " + title)
	}
	b.WriteString("\n\n")
	b.WriteString(StripMarkdown(text))
	b.WriteString("\n\n")
	if commentary != "" {
		b.WriteString(StripMarkdown(commentary))
		b.WriteString("\n\n")
	}
	b.WriteString(brandedFooter)
	return b.String()
}

// GlossaryTerm formats a glossary entry for sharing.
func GlossaryTerm(term, definition string) string {
	return term + "\n\n" + StripMarkdown(definition) + brandedFooter
}
