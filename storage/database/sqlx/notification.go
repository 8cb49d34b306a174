package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/notification"
)

type preferencesRow struct {
	UserID        string    `db:"user_id"`
	Enabled       bool      `db:"enabled"`
	DailyReminder bool      `db:"daily_reminder"`
	ReminderTime  string    `db:"reminder_time"`
	ReminderDays  string    `db:"reminder_days"` // JSON array
	Timezone      string    `db:"timezone"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row preferencesRow) preferences() (notification.Preferences, error) {
	days := make([]int, 0, 7)
	if err := json.Unmarshal([]byte(row.ReminderDays), &days); err != nil {
		return notification.Preferences{}, errors.Wrap(err, "decoding reminder days")
	}
	return notification.Preferences{
		UserID:        row.UserID,
		Enabled:       row.Enabled,
		DailyReminder: row.DailyReminder,
		ReminderTime:  row.ReminderTime,
		ReminderDays:  days,
		Timezone:      row.Timezone,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

const preferencesColumns = "user_id, enabled, daily_reminder, reminder_time, reminder_days, timezone, updated_at"

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo notificationRepository) SaveToken(ctx context.Context, tok notification.Token) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO push_tokens (user_id, token, platform, created_at, updated_at)
		VALUES (:user_id, :token, :platform, :created_at, :updated_at)
		ON CONFLICT (user_id, token) DO UPDATE SET platform = excluded.platform, updated_at = excluded.updated_at`,
		tok,
	)
	return errors.Wrap(err, "saving push token")
}

func (repo notificationRepository) TokensForUser(ctx context.Context, userID string) ([]string, error) {
	tokens := make([]string, 0)
	query := repo.db.Rebind("SELECT token FROM push_tokens WHERE user_id = ? ORDER BY created_at, token")
	if err := repo.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting push tokens")
	}
	return tokens, nil
}

func (repo notificationRepository) DeleteTokens(ctx context.Context, userID string, tokens ...string) error {
	query, args := "DELETE FROM push_tokens WHERE user_id = ?", []interface{}{userID}
	if len(tokens) > 0 {
		var err error
		if query, args, err = sqlx.In(query+" AND token IN (?)", userID, tokens); err != nil {
			return errors.Wrap(err, "building delete query")
		}
	}
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting push tokens")
}

func (repo notificationRepository) GetPreferences(ctx context.Context, userID string) (notification.Preferences, error) {
	var row preferencesRow
	query := repo.db.Rebind("SELECT " + preferencesColumns + " FROM notification_preferences WHERE user_id = ?")
	if err := repo.db.GetContext(ctx, &row, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return notification.Preferences{}, notification.ErrNotFound
		}
		return notification.Preferences{}, errors.Wrap(err, "selecting notification preferences")
	}
	return row.preferences()
}

func (repo notificationRepository) SavePreferences(ctx context.Context, prefs notification.Preferences) error {
	days := prefs.ReminderDays
	if days == nil {
		days = []int{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return errors.Wrap(err, "encoding reminder days")
	}
	row := preferencesRow{
		UserID:        prefs.UserID,
		Enabled:       prefs.Enabled,
		DailyReminder: prefs.DailyReminder,
		ReminderTime:  prefs.ReminderTime,
		ReminderDays:  string(daysJSON),
		Timezone:      prefs.Timezone,
		UpdatedAt:     prefs.UpdatedAt.UTC(),
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO notification_preferences (`+preferencesColumns+`)
		VALUES (:user_id, :enabled, :daily_reminder, :reminder_time, :reminder_days, :timezone, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			enabled = excluded.enabled, daily_reminder = excluded.daily_reminder, reminder_time = excluded.reminder_time,
			reminder_days = excluded.reminder_days, timezone = excluded.timezone, updated_at = excluded.updated_at`,
		row,
	)
	return errors.Wrap(err, "saving notification preferences")
}

func (repo notificationRepository) DeletePreferences(ctx context.Context, userID string) error {
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM notification_preferences WHERE user_id = ?"), userID)
	return errors.Wrap(err, "deleting notification preferences")
}

func (repo notificationRepository) QueryReminderPreferences(ctx context.Context) ([]notification.Preferences, error) {
	var rows []preferencesRow
	query := repo.db.Rebind(
		"SELECT " + preferencesColumns + " FROM notification_preferences WHERE enabled = ? AND daily_reminder = ? ORDER BY user_id",
	)
	if err := repo.db.SelectContext(ctx, &rows, query, true, true); err != nil {
		return nil, errors.Wrap(err, "selecting notification preferences")
	}

	prefs := make([]notification.Preferences, 0, len(rows))
	for _, row := range rows {
		p, err := row.preferences()
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, nil
}
