package account_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/account"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
	emailsvc "github.com/trezcool/dailysutra/services/email"
	testutil "github.com/trezcool/dailysutra/tests"
)

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewServices(t)
	jane := testutil.CreateUser(t, s.UserRepo, "Jane Doe", "jane@test.cd", "Dh4rana#Flow", true)
	john := testutil.CreateUser(t, s.UserRepo, "John Doe", "john@test.cd", "Dh4rana#Flow", true)

	trial := subscription.Access{Status: subscription.StatusTrial}
	_, err := s.Subscriptions.StartTrial(ctx, jane.ID)
	require.NoError(t, err)
	_, err = s.Journeys.Apply(ctx, jane.ID, progress.Action{Type: progress.ToggleDayPractice, Day: 1}, trial)
	require.NoError(t, err)
	require.NoError(t, s.Notifications.RegisterToken(ctx, jane.ID, "tok-a", "web"))
	_, err = s.Notifications.UpdatePreferences(ctx, jane.ID, notification.DefaultPreferences(jane.ID))
	require.NoError(t, err)

	t.Run("missing uid", func(t *testing.T) {
		err := s.Accounts.Delete(ctx, jane.ID, "")
		_, ok := err.(*core.ValidationError)
		assert.True(t, ok)
	})

	t.Run("someone else's account", func(t *testing.T) {
		err := s.Accounts.Delete(ctx, john.ID, jane.ID)
		assert.Equal(t, account.ErrForbidden, err)
		_, err = s.Users.GetByID(ctx, jane.ID)
		assert.NoError(t, err)
	})

	t.Run("own account", func(t *testing.T) {
		emailsvc.ResetSentMessages()
		require.NoError(t, s.Accounts.Delete(ctx, jane.ID, jane.ID))

		_, err := s.Users.GetByID(ctx, jane.ID)
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
		_, err = s.Journeys.Get(ctx, jane.ID)
		assert.Equal(t, journey.ErrNotFound, errors.Cause(err))

		res, err := s.Notifications.Send(ctx, jane.ID, notification.Message{})
		require.NoError(t, err)
		assert.False(t, res.Success)

		var count int
		require.NoError(t, s.DB.Get(&count, "SELECT COUNT(*) FROM subscriptions"))
		assert.Zero(t, count)
		require.NoError(t, s.DB.Get(&count, "SELECT COUNT(*) FROM notification_preferences"))
		assert.Zero(t, count)

		msg, ok := emailsvc.LastSentMessage()
		require.True(t, ok)
		assert.Equal(t, "goodbye", msg.TemplateName)
		assert.Contains(t, msg.TextContent, "A final export of your journey is attached.")
		require.Len(t, msg.Attachments, 1)

		export, err := base64.StdEncoding.DecodeString(msg.Attachments[0].Content.String())
		require.NoError(t, err)
		state, err := progress.Import(export)
		require.NoError(t, err)
		assert.True(t, state.DayProgress[1].DidPractice)

		// john is untouched
		_, err = s.Users.GetByID(ctx, john.ID)
		assert.NoError(t, err)
	})

	t.Run("account without journey", func(t *testing.T) {
		emailsvc.ResetSentMessages()
		require.NoError(t, s.Accounts.Delete(ctx, john.ID, john.ID))
		msg, ok := emailsvc.LastSentMessage()
		require.True(t, ok)
		assert.Empty(t, msg.Attachments)
		assert.NotContains(t, msg.TextContent, "attached")
	})

	t.Run("unknown account", func(t *testing.T) {
		err := s.Accounts.Delete(ctx, "ghost", "ghost")
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})
}
