package notification

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound     = errors.New("notification preferences not found")
	ErrInvalidToken = errors.New("push token is invalid or unregistered")
)

type (
	// Sender delivers a message to many device tokens.
	// The returned errors match `tokens` one by one, nil on success;
	// ErrInvalidToken marks a token that should be forgotten.
	Sender interface {
		Send(ctx context.Context, tokens []string, msg Message) ([]error, error)
	}

	Repository interface {
		// SaveToken inserts the token, or refreshes its platform & updated_at.
		SaveToken(ctx context.Context, tok Token) error
		TokensForUser(ctx context.Context, userID string) ([]string, error)
		// DeleteTokens deletes the given tokens of the user, or all of them when none is given.
		DeleteTokens(ctx context.Context, userID string, tokens ...string) error
		GetPreferences(ctx context.Context, userID string) (Preferences, error)
		SavePreferences(ctx context.Context, prefs Preferences) error
		DeletePreferences(ctx context.Context, userID string) error
		// QueryReminderPreferences returns the preferences with reminders turned on.
		QueryReminderPreferences(ctx context.Context) ([]Preferences, error)
	}

	Service interface {
		RegisterToken(ctx context.Context, userID, token, platform string) error
		Send(ctx context.Context, userID string, msg Message) (SendResult, error)
		Preferences(ctx context.Context, userID string) (Preferences, error)
		UpdatePreferences(ctx context.Context, userID string, prefs Preferences) (Preferences, error)
		DueReminders(ctx context.Context, now time.Time) ([]Preferences, error)
		// SendReminders sends the daily reminder to every user due at `now`; it returns the number of users reached.
		SendReminders(ctx context.Context, now time.Time) (int, error)
		DeleteTokens(ctx context.Context, userID string) error
		DeletePreferences(ctx context.Context, userID string) error
	}

	service struct {
		repo   Repository
		sender Sender
		logger core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, sender Sender, logger core.Logger) Service {
	return &service{repo: repo, sender: sender, logger: logger}
}

func (svc *service) RegisterToken(ctx context.Context, userID, token, platform string) error {
	var missing []string
	if userID == "" {
		missing = append(missing, "user_id")
	}
	if token = core.CleanString(token); token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return core.NewRequiredFieldsError(missing...)
	}
	if platform = core.CleanString(platform, true /* lower */); platform == "" {
		platform = PlatformWeb
	}

	now := NowFunc().UTC()
	err := svc.repo.SaveToken(ctx, Token{
		UserID:    userID,
		Token:     token,
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return errors.Wrap(err, "saving push token")
}

func (svc *service) Send(ctx context.Context, userID string, msg Message) (SendResult, error) {
	if userID == "" {
		return SendResult{}, core.NewRequiredFieldsError("user_id")
	}
	tokens, err := svc.repo.TokensForUser(ctx, userID)
	if err != nil {
		return SendResult{}, errors.Wrap(err, "getting push tokens")
	}
	if len(tokens) == 0 {
		return SendResult{Success: false, Message: "No tokens found for user"}, nil
	}

	errs, err := svc.sender.Send(ctx, tokens, msg.withDefaults())
	if err != nil {
		return SendResult{}, errors.Wrap(err, "sending push message")
	}

	res := SendResult{Success: true}
	var invalid []string
	for i, tok := range tokens {
		var sendErr error
		if i < len(errs) {
			sendErr = errs[i]
		}
		switch {
		case sendErr == nil:
			res.SuccessCount++
		case errors.Cause(sendErr) == ErrInvalidToken:
			res.FailureCount++
			invalid = append(invalid, tok)
		default:
			res.FailureCount++
			svc.logger.Warn("push message not delivered", sendErr, map[string]interface{}{"user_id": userID})
		}
	}

	if len(invalid) > 0 {
		if err = svc.repo.DeleteTokens(ctx, userID, invalid...); err != nil {
			svc.logger.Error("pruning invalid push tokens", err, map[string]interface{}{"user_id": userID})
		}
	}
	return res, nil
}

func (svc *service) Preferences(ctx context.Context, userID string) (Preferences, error) {
	prefs, err := svc.repo.GetPreferences(ctx, userID)
	if errors.Cause(err) == ErrNotFound {
		return DefaultPreferences(userID), nil
	}
	return prefs, errors.Wrap(err, "getting notification preferences")
}

func (svc *service) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) (Preferences, error) {
	prefs.UserID = userID
	prefs.UpdatedAt = NowFunc().UTC()
	if prefs.ReminderDays == nil {
		prefs.ReminderDays = []int{}
	}
	if err := svc.repo.SavePreferences(ctx, prefs); err != nil {
		return Preferences{}, errors.Wrap(err, "saving notification preferences")
	}
	return prefs, nil
}

func (svc *service) DueReminders(ctx context.Context, now time.Time) ([]Preferences, error) {
	all, err := svc.repo.QueryReminderPreferences(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying notification preferences")
	}
	due := make([]Preferences, 0, len(all))
	for _, prefs := range all {
		if prefs.dueAt(now) {
			due = append(due, prefs)
		}
	}
	return due, nil
}

func (svc *service) SendReminders(ctx context.Context, now time.Time) (int, error) {
	due, err := svc.DueReminders(ctx, now)
	if err != nil {
		return 0, err
	}
	var reached int
	for _, prefs := range due {
		res, err := svc.Send(ctx, prefs.UserID, Message{Data: map[string]string{"type": "daily_reminder"}})
		if err != nil {
			svc.logger.Error("sending daily reminder", err, map[string]interface{}{"user_id": prefs.UserID})
			continue
		}
		if res.SuccessCount > 0 {
			reached++
		}
	}
	return reached, nil
}

func (svc *service) DeleteTokens(ctx context.Context, userID string) error {
	return svc.repo.DeleteTokens(ctx, userID)
}

func (svc *service) DeletePreferences(ctx context.Context, userID string) error {
	return svc.repo.DeletePreferences(ctx, userID)
}
