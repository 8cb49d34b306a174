package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/notification"
	testutil "github.com/trezcool/dailysutra/tests"
)

func TestRegisterToken(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewServices(t)

	err := s.Notifications.RegisterToken(ctx, "", " ", "")
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	assert.Len(t, vErr.Fields, 2)

	require.NoError(t, s.Notifications.RegisterToken(ctx, "u1", "tok-a", ""))
	require.NoError(t, s.Notifications.RegisterToken(ctx, "u1", "tok-a", "Android"))
	require.NoError(t, s.Notifications.RegisterToken(ctx, "u1", "tok-b", "web"))

	var platform string
	require.NoError(t, s.DB.Get(&platform, s.DB.Rebind("SELECT platform FROM push_tokens WHERE token = ?"), "tok-a"))
	assert.Equal(t, "android", platform)
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewServices(t, "tok-stale")

	res, err := s.Notifications.Send(ctx, "u1", notification.Message{})
	require.NoError(t, err)
	assert.Equal(t, notification.SendResult{Success: false, Message: "No tokens found for user"}, res)

	for _, tok := range []string{"tok-a", "tok-stale", "tok-b"} {
		require.NoError(t, s.Notifications.RegisterToken(ctx, "u1", tok, "web"))
	}

	res, err = s.Notifications.Send(ctx, "u1", notification.Message{Body: "Week 3 begins"})
	require.NoError(t, err)
	assert.Equal(t, notification.SendResult{Success: true, SuccessCount: 2, FailureCount: 1}, res)

	sent := s.Push.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, notification.DefaultTitle, sent[0].Message.Title)
	assert.Equal(t, "Week 3 begins", sent[0].Message.Body)

	// the stale token was pruned
	res, err = s.Notifications.Send(ctx, "u1", notification.Message{})
	require.NoError(t, err)
	assert.Equal(t, notification.SendResult{Success: true, SuccessCount: 2}, res)
	assert.Equal(t, notification.DefaultBody, s.Push.Sent()[2].Message.Body)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewServices(t)

	prefs, err := s.Notifications.Preferences(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, notification.DefaultPreferences("u1"), prefs)

	prefs.Enabled = true
	prefs.ReminderTime = "07:30"
	prefs.ReminderDays = []int{1}
	prefs.Timezone = "Africa/Kinshasa"
	_, err = s.Notifications.UpdatePreferences(ctx, "u1", prefs)
	require.NoError(t, err)

	got, err := s.Notifications.Preferences(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, "07:30", got.ReminderTime)
	assert.Equal(t, []int{1}, got.ReminderDays)
}

func TestReminders(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewServices(t)

	kinshasa := notification.DefaultPreferences("u1") // UTC+1
	kinshasa.Enabled = true
	kinshasa.ReminderTime = "07:30"
	kinshasa.ReminderDays = []int{1} // Monday
	kinshasa.Timezone = "Africa/Kinshasa"
	_, err := s.Notifications.UpdatePreferences(ctx, "u1", kinshasa)
	require.NoError(t, err)

	disabled := notification.DefaultPreferences("u2")
	disabled.ReminderTime = "06:00"
	_, err = s.Notifications.UpdatePreferences(ctx, "u2", disabled)
	require.NoError(t, err)

	require.NoError(t, s.Notifications.RegisterToken(ctx, "u1", "tok-a", "web"))
	require.NoError(t, s.Notifications.RegisterToken(ctx, "u2", "tok-b", "web"))

	monday := time.Date(2026, 1, 5, 6, 10, 0, 0, time.UTC) // 07:10 in Kinshasa
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "due", now: monday, want: 1},
		{name: "other hour", now: monday.Add(time.Hour), want: 0},
		{name: "other day", now: monday.AddDate(0, 0, 1), want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			due, err := s.Notifications.DueReminders(ctx, tc.now)
			require.NoError(t, err)
			assert.Len(t, due, tc.want)
		})
	}

	reached, err := s.Notifications.SendReminders(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, reached)
	sent := s.Push.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "tok-a", sent[0].Token)
	assert.Equal(t, "daily_reminder", sent[0].Message.Data["type"])
}
