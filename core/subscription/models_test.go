package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccess(t *testing.T) {
	tests := []struct {
		status      Status
		wantDay28   bool
		wantDay29   bool
		wantWeek4   bool
		wantWeek5   bool
		wantEdit    bool
		wantExpired bool
	}{
		{status: StatusActive, wantDay28: true, wantDay29: true, wantWeek4: true, wantWeek5: true, wantEdit: true},
		{status: StatusTrial, wantDay28: true, wantWeek4: true, wantEdit: true},
		{status: StatusExpired, wantExpired: true},
		{status: StatusNone, wantExpired: true},
		{status: "bogus", wantExpired: true},
	}
	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			a := Access{Status: tc.status}
			assert.Equal(t, tc.wantDay28, a.CanAccessDay(28))
			assert.Equal(t, tc.wantDay29, a.CanAccessDay(29))
			assert.Equal(t, tc.wantWeek4, a.CanAccessWeek(4))
			assert.Equal(t, tc.wantWeek5, a.CanAccessWeek(5))
			assert.False(t, a.CanAccessWeek(53))
			assert.Equal(t, tc.wantEdit, a.CanEditJourney())
			assert.Equal(t, tc.wantExpired, a.IsExpired())
		})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(StatusTrial, Record{Status: StatusTrial})
	assert.Equal(t, View{
		Status:         StatusTrial,
		IsTrialActive:  true,
		CanEditJourney: true,
		TrialDays:      28,
	}, v)
}
