package progress

type ActionType string

const (
	ToggleDayPractice    ActionType = "TOGGLE_DAY_PRACTICE"
	UpdateDayNote        ActionType = "UPDATE_DAY_NOTE"
	ToggleWeekCompleted  ActionType = "TOGGLE_WEEK_COMPLETED"
	ToggleWeekEnjoyed    ActionType = "TOGGLE_WEEK_ENJOYED"
	ToggleWeekBookmarked ActionType = "TOGGLE_WEEK_BOOKMARKED"
	UpdateWeekReflection ActionType = "UPDATE_WEEK_REFLECTION"
	SetStartDate         ActionType = "SET_START_DATE"
	ResetAll             ActionType = "RESET_ALL"
	Hydrate              ActionType = "HYDRATE"
)

// Action describes a state transition. Only the fields relevant to Type are read.
type Action struct {
	Type      ActionType `json:"type"`
	Day       int        `json:"day,omitempty"`
	Week      int        `json:"week,omitempty"`
	Note      string     `json:"note,omitempty"`
	StartDate *string    `json:"start_date,omitempty"`
	State     *State     `json:"state,omitempty"`
}

// TargetsDay reports whether the action edits a day entry.
func (a Action) TargetsDay() bool {
	return a.Type == ToggleDayPractice || a.Type == UpdateDayNote
}

// TargetsWeek reports whether the action edits a week entry.
func (a Action) TargetsWeek() bool {
	switch a.Type {
	case ToggleWeekCompleted, ToggleWeekEnjoyed, ToggleWeekBookmarked, UpdateWeekReflection:
		return true
	}
	return false
}

// DayNumber returns the clamped day the action targets.
func (a Action) DayNumber() int { return clampDay(a.Day) }

// WeekNumber returns the clamped week the action targets.
func (a Action) WeekNumber() int { return clampWeek(a.Week) }

// Reduce applies `action` to `state` and returns the new state.
// The given state is never modified. Out of range day & week numbers are clamped.
// Unknown actions return the state unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case Hydrate:
		if action.State == nil {
			return state
		}
		return action.State.Clone()

	case ResetAll:
		return Initial()

	case SetStartDate:
		next := state.Clone()
		next.Settings.StartDate = nil
		if action.StartDate != nil {
			date := *action.StartDate
			next.Settings.StartDate = &date
		}
		return next

	case ToggleDayPractice, UpdateDayNote:
		day := clampDay(action.Day)
		next := state.Clone()
		cur := next.DayProgress[day]
		cur.DayNumber = day
		if action.Type == ToggleDayPractice {
			cur.DidPractice = !cur.DidPractice
		} else {
			cur.Note = action.Note
		}
		next.DayProgress[day] = cur
		return next

	case ToggleWeekCompleted, ToggleWeekEnjoyed, ToggleWeekBookmarked, UpdateWeekReflection:
		week := clampWeek(action.Week)
		next := state.Clone()
		cur := next.WeekProgress[week]
		cur.Week = week
		switch action.Type {
		case ToggleWeekCompleted:
			cur.Completed = !cur.Completed
		case ToggleWeekEnjoyed:
			cur.Enjoyed = !cur.Enjoyed
			// enjoying implies bookmarking, never the other way around
			if cur.Enjoyed {
				cur.Bookmarked = true
			}
		case ToggleWeekBookmarked:
			cur.Bookmarked = !cur.Bookmarked
		case UpdateWeekReflection:
			cur.ReflectionNote = action.Note
		}
		next.WeekProgress[week] = cur
		return next

	default:
		return state
	}
}
