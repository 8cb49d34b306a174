package tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/dailysutra/apps/api/echo"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/program"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
)

func Test_programApi_weeks(t *testing.T) {
	e := setup(t)

	rec := e.serve(httpTest{method: http.MethodGet, path: "/v1/program"})
	require.Equal(t, http.StatusOK, rec.Code)
	var weeks []program.Week
	unmarchallObj(t, rec.Body.Bytes(), &weeks)
	require.Len(t, weeks, program.TotalWeeks)
	assert.Equal(t, "What is Yoga?", weeks[0].Theme)

	week1, _ := program.GetWeek(1)
	tests := []httpTest{
		{name: "week", path: "/v1/program/weeks/1", wantCode: http.StatusOK, wantData: marchallObj(t, week1)},
		{name: "week 0", path: "/v1/program/weeks/0", wantCode: http.StatusNotFound},
		{name: "week 53", path: "/v1/program/weeks/53", wantCode: http.StatusNotFound},
		{name: "malformed", path: "/v1/program/weeks/one", wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, e.serve(tt))
		})
	}
}

func Test_programApi_day(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	unverified := e.createUser(t, "Ravi", "ravi@test.cd", false)
	token := e.token(t, usr)

	state := progress.Initial()
	state.Settings.StartDate = strPtr("2026-01-01")
	state.DayProgress[8] = progress.DayProgress{DayNumber: 8, DidPractice: true, Note: "svādhyāya"}
	_, err := e.svcs.Journeys.Replace(t.Context(), usr.ID, state, subscription.Access{Status: subscription.StatusTrial})
	require.NoError(t, err)

	day8, _ := program.GetDay(8)
	dp := state.DayProgress[8]
	day9, _ := program.GetDay(9)
	notEntitled := marchallObj(t, httpErr{Error: journey.ErrNotEntitled.Error()})

	tests := []httpTest{
		{
			name: "with progress", path: "/v1/program/days/8", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, DayResponse{Day: day8, Date: "2026-01-08", Progress: &dp}),
		},
		{
			name: "without progress", path: "/v1/program/days/9", token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, DayResponse{Day: day9, Date: "2026-01-09"}),
		},
		{name: "beyond trial", path: "/v1/program/days/29", token: token, wantCode: http.StatusForbidden, wantData: notEntitled},
		{name: "no subscription", path: "/v1/program/days/1", token: e.token(t, unverified), wantCode: http.StatusForbidden, wantData: notEntitled},
		{name: "day 365", path: "/v1/program/days/365", token: token, wantCode: http.StatusNotFound},
		{name: "Auth required", path: "/v1/program/days/1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, e.serve(tt))
		})
	}

	t.Run("paid reaches the last day", func(t *testing.T) {
		_, err := e.svcs.Subscriptions.Upgrade(t.Context(), usr.ID)
		require.NoError(t, err)
		rec := e.serve(httpTest{method: http.MethodGet, path: "/v1/program/days/364", token: token})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DayResponse
		unmarchallObj(t, rec.Body.Bytes(), &resp)
		assert.Equal(t, 52, resp.Week)
		assert.Equal(t, 7, resp.DayIndex)
		assert.Equal(t, "2026-12-30", resp.Date)
	})
}

func Test_programApi_today(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Jane", "jane@test.cd", true)
	token := e.token(t, usr)
	mockNow(t, time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC))

	check := func(t *testing.T, want TodayResponse) {
		t.Helper()
		rec := e.serve(httpTest{method: http.MethodGet, path: "/v1/program/today", token: token})
		require.Equal(t, http.StatusOK, rec.Code)
		var got TodayResponse
		unmarchallObj(t, rec.Body.Bytes(), &got)
		assert.Equal(t, want, got)
	}

	t.Run("not started", func(t *testing.T) {
		check(t, TodayResponse{Today: "2026-02-01"})
	})

	t.Run("within the trial", func(t *testing.T) {
		_, err := e.svcs.Journeys.Apply(t.Context(), usr.ID, progress.Action{Type: progress.SetStartDate, StartDate: strPtr("2026-01-10")}, subscription.Access{Status: subscription.StatusTrial})
		require.NoError(t, err)
		day, _ := program.GetDay(23)
		check(t, TodayResponse{Started: true, StartDate: "2026-01-10", Today: "2026-02-01", Entitled: true, Day: &day})
	})

	t.Run("past the trial", func(t *testing.T) {
		_, err := e.svcs.Journeys.Apply(t.Context(), usr.ID, progress.Action{Type: progress.SetStartDate, StartDate: strPtr("2026-01-01")}, subscription.Access{Status: subscription.StatusTrial})
		require.NoError(t, err)
		day, _ := program.GetDay(32)
		check(t, TodayResponse{Started: true, StartDate: "2026-01-01", Today: "2026-02-01", Entitled: false, Day: &day})
	})

	t.Run("start date in the future", func(t *testing.T) {
		_, err := e.svcs.Journeys.Apply(t.Context(), usr.ID, progress.Action{Type: progress.SetStartDate, StartDate: strPtr("2026-03-01")}, subscription.Access{Status: subscription.StatusTrial})
		require.NoError(t, err)
		check(t, TodayResponse{StartDate: "2026-03-01", Today: "2026-02-01"})
	})
}

func Test_contentApi(t *testing.T) {
	e := setup(t)

	pack := `
sutras:
  - {book: 1, number: 2, title: Definition, text: "yogaś citta-vṛtti-nirodhaḥ", commentary: "Yoga is the stilling of the mind."}
  - {book: 1, number: 1, title: Now, text: "atha yogānuśāsanam"}
  - {book: 2, number: 1, title: Kriyā Yoga, text: "tapaḥ svādhyāyeśvarapraṇidhānāni kriyāyogaḥ"}
glossary:
  - {term: Samādhi, definition: Absorption.}
  - {term: Āsana, definition: Steady & comfortable seat.}
`
	res, err := e.svcs.Content.Seed(t.Context(), strings.NewReader(pack))
	require.NoError(t, err)
	require.Equal(t, content.SeedResult{Sutras: 3, Terms: 2}, res)

	invalidBook := marchallObj(t, map[string]string{"book": content.ErrInvalidBook.Error()})
	tests := []httpTest{
		{name: "missing book", path: "/v1/sutras", wantCode: http.StatusBadRequest, wantData: invalidBook},
		{name: "book 5", path: "/v1/sutras?book=5", wantCode: http.StatusBadRequest, wantData: invalidBook},
		{name: "empty book", path: "/v1/sutras?book=4", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{
			name: "book 1", path: "/v1/sutras?book=1", wantCode: http.StatusOK,
			extra: func(t *testing.T, body []byte) {
				var sutras []content.Sutra
				unmarchallObj(t, body, &sutras)
				require.Len(t, sutras, 2)
				assert.Equal(t, 1, sutras[0].Number)
				assert.Equal(t, "Now", sutras[0].Title)
				assert.Equal(t, 2, sutras[1].Number)
			},
		},
		{
			name: "glossary", path: "/v1/glossary", wantCode: http.StatusOK,
			extra: func(t *testing.T, body []byte) {
				var terms []content.GlossaryTerm
				unmarchallObj(t, body, &terms)
				require.Len(t, terms, 2)
				assert.Equal(t, "Āsana", terms[0].Term)
				assert.Equal(t, "Samādhi", terms[1].Term)
			},
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			rec := e.serve(tt)
			checkCodeAndData(t, tt, rec)
			if check, ok := tt.extra.(func(*testing.T, []byte)); ok {
				check(t, rec.Body.Bytes())
			}
		})
	}
	sutras, err := e.svcs.Content.SutrasByBook(t.Context(), 1)
	require.NoError(t, err)
	terms, err := e.svcs.Content.Glossary(t.Context())
	require.NoError(t, err)

	shareTests := []struct {
		name     string
		path     string
		wantCode int
		contains []string
	}{
		{
			name: "share sutra", path: "/v1/sutras/" + sutras[1].ID + "/share", wantCode: http.StatusOK,
			contains: []string{"Book 1 2: Definition", "yogaś citta-vṛtti-nirodhaḥ", "Yoga is the stilling of the mind.", "Shared from DailySutra.app"},
		},
		{name: "unknown sutra", path: "/v1/sutras/lol/share", wantCode: http.StatusNotFound, contains: []string{content.ErrNotFound.Error()}},
		{
			name: "share term", path: "/v1/glossary/" + terms[1].ID + "/share", wantCode: http.StatusOK,
			contains: []string{"Samādhi\n\nAbsorption.", "Shared from DailySutra.app"},
		},
		{name: "unknown term", path: "/v1/glossary/lol/share", wantCode: http.StatusNotFound, contains: []string{content.ErrNotFound.Error()}},
	}
	for _, tt := range shareTests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.serve(httpTest{method: http.MethodGet, path: tt.path})
			assert.Equal(t, tt.wantCode, rec.Code)
			for _, want := range tt.contains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
