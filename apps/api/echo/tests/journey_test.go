package tests

import (
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/dailysutra/apps/api/echo"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
)

func mockNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := NowFunc
	NowFunc = func() time.Time { return now }
	t.Cleanup(func() { NowFunc = orig })
}

func strPtr(s string) *string { return &s }

func Test_journeyApi_retrieve(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	token := e.token(t, usr)

	tt := httpTest{
		method: http.MethodGet, path: "/v1/journey", token: token,
		wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: journey.ErrNotFound.Error()}),
	}
	checkCodeAndData(t, tt, e.serve(tt))

	state := progress.Initial()
	state.DayProgress[1] = progress.DayProgress{DayNumber: 1, DidPractice: true, Note: "steady"}
	_, err := e.svcs.Journeys.Replace(t.Context(), usr.ID, state, subscription.Access{Status: subscription.StatusTrial})
	require.NoError(t, err)

	tt = httpTest{
		method: http.MethodGet, path: "/v1/journey", token: token,
		wantCode: http.StatusOK, wantData: marchallObj(t, state),
	}
	checkCodeAndData(t, tt, e.serve(tt))

	tt = httpTest{method: http.MethodGet, path: "/v1/journey", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
	checkCodeAndData(t, tt, e.serve(tt))
}

func Test_journeyApi_merge(t *testing.T) {
	e := setup(t)
	trial := e.createUser(t, "Jane", "jane@test.cd", true)
	unverified := e.createUser(t, "Ravi", "ravi@test.cd", false)
	paid := e.createUser(t, "Mira", "mira@test.cd", true)
	_, err := e.svcs.Subscriptions.Upgrade(t.Context(), paid.ID)
	require.NoError(t, err)

	incoming := progress.Initial()
	incoming.DayProgress[1] = progress.DayProgress{DayNumber: 1, DidPractice: true}
	incoming.DayProgress[40] = progress.DayProgress{DayNumber: 40, Note: "later"}
	incoming.WeekProgress[2] = progress.WeekProgress{Week: 2, Completed: true}
	incoming.WeekProgress[6] = progress.WeekProgress{Week: 6, Bookmarked: true}
	incoming.Settings.StartDate = strPtr("2026-01-05")

	trialState := progress.Initial()
	trialState.DayProgress[1] = incoming.DayProgress[1]
	trialState.WeekProgress[2] = incoming.WeekProgress[2]
	trialState.Settings.StartDate = strPtr("2026-01-05")

	tests := []httpTest{
		{
			name: "not entitled", token: e.token(t, unverified), body: marchallObj(t, incoming),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: journey.ErrNotEntitled.Error()}),
		},
		{
			name: "trial keeps the trial weeks", token: e.token(t, trial), body: marchallObj(t, incoming),
			wantCode: http.StatusOK, wantData: marchallObj(t, trialState),
		},
		{
			name: "paid keeps everything", token: e.token(t, paid), body: marchallObj(t, incoming),
			wantCode: http.StatusOK, wantData: marchallObj(t, incoming),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut
		tt.path = "/v1/journey"

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, e.serve(tt))
		})
	}

	t.Run("merges per key", func(t *testing.T) {
		update := progress.Initial()
		update.DayProgress[2] = progress.DayProgress{DayNumber: 2, Note: "second"}
		update.Settings.StartDate = strPtr("2026-01-05")

		tt := httpTest{method: http.MethodPut, path: "/v1/journey", token: e.token(t, trial), body: marchallObj(t, update), wantCode: http.StatusOK}
		rec := e.serve(tt)
		checkCodeAndData(t, tt, rec)

		var got progress.State
		unmarchallObj(t, rec.Body.Bytes(), &got)
		assert.Len(t, got.DayProgress, 2)
		assert.True(t, got.DayProgress[1].DidPractice)
		assert.Equal(t, "second", got.DayProgress[2].Note)
		assert.True(t, got.WeekProgress[2].Completed)
	})
}

func Test_journeyApi_dispatch(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	token := e.token(t, usr)
	notEntitled := marchallObj(t, httpErr{Error: journey.ErrNotEntitled.Error()})

	tests := []httpTest{
		{
			name: "toggle practice", body: marchallObj(t, progress.Action{Type: progress.ToggleDayPractice, Day: 3}),
			wantCode: http.StatusOK, extra: func(t *testing.T, s progress.State) { assert.True(t, s.DayProgress[3].DidPractice) },
		},
		{
			name: "day note", body: marchallObj(t, progress.Action{Type: progress.UpdateDayNote, Day: 3, Note: "calm"}),
			wantCode: http.StatusOK, extra: func(t *testing.T, s progress.State) {
				assert.Equal(t, progress.DayProgress{DayNumber: 3, DidPractice: true, Note: "calm"}, s.DayProgress[3])
			},
		},
		{
			name: "bookmark week", body: marchallObj(t, progress.Action{Type: progress.ToggleWeekBookmarked, Week: 4}),
			wantCode: http.StatusOK, extra: func(t *testing.T, s progress.State) { assert.True(t, s.WeekProgress[4].Bookmarked) },
		},
		{
			name: "start date", body: marchallObj(t, progress.Action{Type: progress.SetStartDate, StartDate: strPtr("2026-01-01")}),
			wantCode: http.StatusOK, extra: func(t *testing.T, s progress.State) { assert.Equal(t, "2026-01-01", s.StartDate()) },
		},
		{
			name: "day beyond trial", body: marchallObj(t, progress.Action{Type: progress.ToggleDayPractice, Day: 29}),
			wantCode: http.StatusForbidden, wantData: notEntitled,
		},
		{
			name: "week beyond trial", body: marchallObj(t, progress.Action{Type: progress.UpdateWeekReflection, Week: 5, Note: "x"}),
			wantCode: http.StatusForbidden, wantData: notEntitled,
		},
		{
			name: "out of range day is clamped", body: marchallObj(t, progress.Action{Type: progress.ToggleDayPractice, Day: -4}),
			wantCode: http.StatusOK, extra: func(t *testing.T, s progress.State) { assert.True(t, s.DayProgress[1].DidPractice) },
		},
		{
			name: "reset", body: marchallObj(t, progress.Action{Type: progress.ResetAll}),
			wantCode: http.StatusOK, wantData: marchallObj(t, progress.Initial()),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/journey/actions"
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			rec := e.serve(tt)
			checkCodeAndData(t, tt, rec)

			if check, ok := tt.extra.(func(*testing.T, progress.State)); ok {
				var got progress.State
				unmarchallObj(t, rec.Body.Bytes(), &got)
				check(t, got)
			}
		})
	}
}

func Test_journeyApi_stats(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	mockNow(t, time.Date(2026, time.January, 3, 9, 0, 0, 0, time.UTC))

	state := progress.Initial()
	state.Settings.StartDate = strPtr("2026-01-01")
	for day := 1; day <= 3; day++ {
		state.DayProgress[day] = progress.DayProgress{DayNumber: day, DidPractice: true}
	}
	state.DayProgress[2] = progress.DayProgress{DayNumber: 2, DidPractice: true, Note: "quiet"}
	state.WeekProgress[1] = progress.WeekProgress{Week: 1, Completed: true}
	_, err := e.svcs.Journeys.Replace(t.Context(), usr.ID, state, subscription.Access{Status: subscription.StatusTrial})
	require.NoError(t, err)

	tt := httpTest{method: http.MethodGet, path: "/v1/journey/stats?count=2", token: e.token(t, usr), wantCode: http.StatusOK}
	rec := e.serve(tt)
	checkCodeAndData(t, tt, rec)

	var resp StatsResponse
	unmarchallObj(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 3, resp.CurrentDay)
	assert.Equal(t, 3, resp.Stats.DaysPracticed)
	assert.Equal(t, 1, resp.Stats.CompletedWeeks)
	assert.Equal(t, progress.Streak{Current: 3, Longest: 3, IsActive: true}, resp.Streak)
	assert.Equal(t, []progress.DayHistoryItem{
		{DayNumber: 3, DidPractice: true},
		{DayNumber: 2, DidPractice: true, HasNote: true},
	}, resp.History)

	// still January 2nd in Los Angeles
	tt.path = "/v1/journey/stats?tz=America/Los_Angeles"
	mockNow(t, time.Date(2026, time.January, 3, 5, 0, 0, 0, time.UTC))
	rec = e.serve(tt)
	unmarchallObj(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 2, resp.CurrentDay)
	assert.Equal(t, progress.Streak{Current: 2, Longest: 3, IsActive: true}, resp.Streak)
}

func Test_journeyApi_exportImport(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	token := e.token(t, usr)
	mockNow(t, time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC))

	state := progress.Initial()
	state.DayProgress[5] = progress.DayProgress{DayNumber: 5, Note: "five"}
	state.WeekProgress[1] = progress.WeekProgress{Week: 1, Enjoyed: true}
	state.Settings.StartDate = strPtr("2026-03-01")
	_, err := e.svcs.Journeys.Replace(t.Context(), usr.ID, state, subscription.Access{Status: subscription.StatusTrial})
	require.NoError(t, err)

	rec := e.serve(httpTest{method: http.MethodGet, path: "/v1/journey/export", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="raja-yoga-progress-2026-03-08.json"`, rec.Header().Get("Content-Disposition"))
	export := rec.Body.Bytes()

	imported := progress.Initial()
	imported.DayProgress[1] = progress.DayProgress{DayNumber: 1, DidPractice: true}
	imported.DayProgress[100] = progress.DayProgress{DayNumber: 100, DidPractice: true}

	tests := []httpTest{
		{
			name: "missing keys", body: []byte(`{"dayProgress": {}}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: progress.ErrInvalidExport.Error()}),
		},
		{
			name: "not json", body: []byte(`lol`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: progress.ErrInvalidExport.Error()}),
		},
		{
			name: "replaces & filters", body: marchallObj(t, imported),
			wantCode: http.StatusOK, wantData: marchallObj(t, progress.State{
				DayProgress:  map[int]progress.DayProgress{1: imported.DayProgress[1]},
				WeekProgress: map[int]progress.WeekProgress{},
			}),
		},
		{name: "restores the export", body: export, wantCode: http.StatusOK, wantData: marchallObj(t, state)},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/journey/import"
		tt.token = token

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, e.serve(tt))
		})
	}
}

func Test_journeyApi_share(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	token := e.token(t, usr)

	state := progress.Initial()
	state.Settings.StartDate = strPtr("2026-01-01")
	state.DayProgress[2] = progress.DayProgress{DayNumber: 2, DidPractice: true, Note: "Noticed the breath."}
	state.WeekProgress[1] = progress.WeekProgress{Week: 1, Completed: true, ReflectionNote: "A good start."}
	_, err := e.svcs.Journeys.Replace(t.Context(), usr.ID, state, subscription.Access{Status: subscription.StatusTrial})
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		wantCode int
		contains []string
	}{
		{
			name: "day", path: "/v1/journey/share/days/2", wantCode: http.StatusOK,
			contains: []string{"Week 1: What is Yoga?", "Day 2 • Friday, January 2, 2026", "✓ Practiced", "Noticed the breath.", "Shared from DailySutra.app"},
		},
		{name: "empty day", path: "/v1/journey/share/days/3", wantCode: http.StatusNotFound, contains: []string{"nothing to share yet"}},
		{name: "malformed day", path: "/v1/journey/share/days/abc", wantCode: http.StatusNotFound},
		{
			name: "week", path: "/v1/journey/share/weeks/1", wantCode: http.StatusOK,
			contains: []string{"Week 1: What is Yoga?", "Weekly Reflection", "Completed", "A good start."},
		},
		{name: "empty week", path: "/v1/journey/share/weeks/2", wantCode: http.StatusNotFound},
		{
			name: "progress", path: "/v1/journey/share/progress", wantCode: http.StatusOK,
			contains: []string{"Days practiced: 1 / 364", "Weeks completed: 1 / 52", "Journey started: January 1, 2026"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.serve(httpTest{method: http.MethodGet, path: tt.path, token: token})
			assert.Equal(t, tt.wantCode, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}
