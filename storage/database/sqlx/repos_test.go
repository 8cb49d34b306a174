package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
	sqlxrepos "github.com/trezcool/dailysutra/storage/database/sqlx"
	testutil "github.com/trezcool/dailysutra/tests"
)

func TestSubscriptionRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewSubscriptionRepository(testutil.PrepareDB(t))
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := repo.GetSubscription(ctx, "u1")
	assert.Equal(t, subscription.ErrNotFound, err)

	trial := subscription.Record{
		UserID:         "u1",
		Status:         subscription.StatusTrial,
		TrialStartedAt: null.TimeFrom(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.CreateSubscription(ctx, trial))

	// creating again keeps the existing record
	again := trial
	again.Status = subscription.StatusExpired
	require.NoError(t, repo.CreateSubscription(ctx, again))

	rec, err := repo.GetSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusTrial, rec.Status)
	assert.True(t, now.Equal(rec.TrialStartedAt.Time))
	assert.False(t, rec.UpgradedAt.Valid)

	later := now.Add(time.Hour)
	active := trial
	active.Status = subscription.StatusActive
	active.UpgradedAt = null.TimeFrom(later)
	active.UpdatedAt = later
	require.NoError(t, repo.SaveSubscription(ctx, active))

	rec, err = repo.GetSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, rec.Status)
	assert.True(t, later.Equal(rec.UpgradedAt.Time))
	assert.True(t, now.Equal(rec.CreatedAt))

	require.NoError(t, repo.DeleteSubscription(ctx, "u1"))
	_, err = repo.GetSubscription(ctx, "u1")
	assert.Equal(t, subscription.ErrNotFound, err)
}

func TestJourneyRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewJourneyRepository(testutil.PrepareDB(t))

	_, err := repo.GetJourney(ctx, "u1", journey.DefaultID)
	assert.Equal(t, journey.ErrNotFound, err)

	start := "2026-01-05"
	state := progress.Initial()
	state.DayProgress[3] = progress.DayProgress{DayNumber: 3, DidPractice: true, Note: "steady"}
	state.WeekProgress[1] = progress.WeekProgress{Week: 1, Completed: true, ReflectionNote: "calm"}
	state.Settings.StartDate = &start

	now := time.Now().UTC().Truncate(time.Second)
	doc, err := repo.UpdateJourney(ctx, "u1", journey.DefaultID, now, func(stored progress.State) (progress.State, error) {
		assert.Equal(t, progress.Initial(), stored, "a new journey starts from the initial state")
		return state, nil
	})
	require.NoError(t, err)
	assert.Equal(t, state, doc.State)

	got, err := repo.GetJourney(ctx, "u1", journey.DefaultID)
	require.NoError(t, err)
	assert.Equal(t, state, got.State)
	assert.WithinDuration(t, now, got.UpdatedAt, time.Second)

	// update
	_, err = repo.UpdateJourney(ctx, "u1", journey.DefaultID, now, func(stored progress.State) (progress.State, error) {
		assert.Equal(t, state, stored)
		return progress.Initial(), nil
	})
	require.NoError(t, err)
	got, err = repo.GetJourney(ctx, "u1", journey.DefaultID)
	require.NoError(t, err)
	assert.Equal(t, progress.Initial(), got.State)

	// a failed update changes nothing
	errBoom := errors.New("boom")
	_, err = repo.UpdateJourney(ctx, "u2", journey.DefaultID, now, func(progress.State) (progress.State, error) {
		return state, errBoom
	})
	assert.Equal(t, errBoom, err)
	_, err = repo.GetJourney(ctx, "u2", journey.DefaultID)
	assert.Equal(t, journey.ErrNotFound, err)

	require.NoError(t, repo.DeleteJourneys(ctx, "u1"))
	_, err = repo.GetJourney(ctx, "u1", journey.DefaultID)
	assert.Equal(t, journey.ErrNotFound, err)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewNotificationRepository(testutil.PrepareDB(t))
	now := time.Now().UTC()

	t.Run("tokens", func(t *testing.T) {
		for i, tok := range []string{"tok-a", "tok-b", "tok-c"} {
			ts := now.Add(time.Duration(i) * time.Second)
			require.NoError(t, repo.SaveToken(ctx, notification.Token{
				UserID: "u1", Token: tok, Platform: notification.PlatformWeb, CreatedAt: ts, UpdatedAt: ts,
			}))
		}
		// re-registering refreshes the token
		require.NoError(t, repo.SaveToken(ctx, notification.Token{
			UserID: "u1", Token: "tok-a", Platform: "android", CreatedAt: now, UpdatedAt: now,
		}))

		tokens, err := repo.TokensForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"tok-a", "tok-b", "tok-c"}, tokens)

		require.NoError(t, repo.DeleteTokens(ctx, "u1", "tok-b"))
		tokens, err = repo.TokensForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"tok-a", "tok-c"}, tokens)

		require.NoError(t, repo.DeleteTokens(ctx, "u1"))
		tokens, err = repo.TokensForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("preferences", func(t *testing.T) {
		_, err := repo.GetPreferences(ctx, "u1")
		assert.Equal(t, notification.ErrNotFound, err)

		on := notification.DefaultPreferences("u1")
		on.Enabled = true
		on.ReminderDays = []int{1, 3}
		on.Timezone = "Africa/Kinshasa"
		on.UpdatedAt = now
		require.NoError(t, repo.SavePreferences(ctx, on))

		off := notification.DefaultPreferences("u2")
		off.UpdatedAt = now
		require.NoError(t, repo.SavePreferences(ctx, off))

		got, err := repo.GetPreferences(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, got.Enabled)
		assert.Equal(t, []int{1, 3}, got.ReminderDays)
		assert.Equal(t, "Africa/Kinshasa", got.Timezone)

		due, err := repo.QueryReminderPreferences(ctx)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "u1", due[0].UserID)

		require.NoError(t, repo.DeletePreferences(ctx, "u1"))
		_, err = repo.GetPreferences(ctx, "u1")
		assert.Equal(t, notification.ErrNotFound, err)
	})
}

func TestContentRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewContentRepository(testutil.PrepareDB(t))

	require.NoError(t, repo.SaveSutras(ctx, []content.Sutra{
		{ID: "s2", Book: 1, Number: 2, Title: "Definition of yoga", Text: "yogaś citta-vṛtti-nirodhaḥ"},
		{ID: "s1", Book: 1, Number: 1, Title: "Now, the teaching", Text: "atha yogānuśāsanam"},
		{ID: "s3", Book: 2, Number: 1, Title: "Kriyā yoga"},
	}))
	// re-seeding updates in place
	require.NoError(t, repo.SaveSutras(ctx, []content.Sutra{
		{ID: "s1", Book: 1, Number: 1, Title: "Now, the teaching of yoga", Text: "atha yogānuśāsanam"},
	}))

	sutras, err := repo.QuerySutras(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sutras, 2)
	assert.Equal(t, 1, sutras[0].Number)
	assert.Equal(t, "Now, the teaching of yoga", sutras[0].Title)
	assert.Equal(t, 2, sutras[1].Number)

	sutras, err = repo.QuerySutras(ctx, 4)
	require.NoError(t, err)
	assert.NotNil(t, sutras)
	assert.Empty(t, sutras)

	require.NoError(t, repo.SaveGlossaryTerms(ctx, []content.GlossaryTerm{
		{ID: "g1", Term: "Samādhi", Definition: "absorption", SortKey: "samadhi"},
		{ID: "g2", Term: "Āsana", Definition: "seat", SortKey: "asana"},
	}))
	terms, err := repo.QueryGlossary(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "Āsana", terms[0].Term)
	assert.Equal(t, "Samādhi", terms[1].Term)
}
