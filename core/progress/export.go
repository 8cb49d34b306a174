package progress

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/program"
)

var ErrInvalidExport = errors.New("invalid export file: expected dayProgress, weekProgress and settings")

// Export serialises the state in the export file format.
func Export(s State) ([]byte, error) {
	data, err := json.MarshalIndent(s.Clone(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshalling state")
	}
	return data, nil
}

// Import parses an export file. It fails with ErrInvalidExport unless all three
// top-level keys are present; the caller's state is left untouched on failure.
// Entries keyed outside the curriculum are dropped, & the key numbers each entry.
func Import(data []byte) (State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, ErrInvalidExport
	}
	for _, key := range []string{"dayProgress", "weekProgress", "settings"} {
		if v, ok := raw[key]; !ok || string(v) == "null" {
			return State{}, ErrInvalidExport
		}
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, errors.Wrap(ErrInvalidExport, err.Error())
	}

	out := s.Clone()
	for day, dp := range out.DayProgress {
		if !program.ValidDay(day) {
			delete(out.DayProgress, day)
			continue
		}
		dp.DayNumber = day
		out.DayProgress[day] = dp
	}
	for week, wp := range out.WeekProgress {
		if !program.ValidWeek(week) {
			delete(out.WeekProgress, week)
			continue
		}
		wp.Week = week
		out.WeekProgress[week] = wp
	}
	return out, nil
}
