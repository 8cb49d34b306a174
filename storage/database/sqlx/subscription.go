package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/subscription"
)

type subscriptionRepository struct {
	db *sqlx.DB
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *sqlx.DB) *subscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (repo subscriptionRepository) GetSubscription(ctx context.Context, userID string) (subscription.Record, error) {
	var rec subscription.Record
	query := repo.db.Rebind(`
		SELECT user_id, status, trial_started_at, upgraded_at, created_at, updated_at
		FROM subscriptions WHERE user_id = ?`)
	if err := repo.db.GetContext(ctx, &rec, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return subscription.Record{}, subscription.ErrNotFound
		}
		return subscription.Record{}, errors.Wrap(err, "selecting subscription")
	}
	return rec, nil
}

func (repo subscriptionRepository) CreateSubscription(ctx context.Context, rec subscription.Record) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO subscriptions (user_id, status, trial_started_at, upgraded_at, created_at, updated_at)
		VALUES (:user_id, :status, :trial_started_at, :upgraded_at, :created_at, :updated_at)
		ON CONFLICT (user_id) DO NOTHING`,
		rec,
	)
	return errors.Wrap(err, "inserting subscription")
}

func (repo subscriptionRepository) SaveSubscription(ctx context.Context, rec subscription.Record) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO subscriptions (user_id, status, trial_started_at, upgraded_at, created_at, updated_at)
		VALUES (:user_id, :status, :trial_started_at, :upgraded_at, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			status = excluded.status, trial_started_at = excluded.trial_started_at,
			upgraded_at = excluded.upgraded_at, updated_at = excluded.updated_at`,
		rec,
	)
	return errors.Wrap(err, "saving subscription")
}

func (repo subscriptionRepository) DeleteSubscription(ctx context.Context, userID string) error {
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM subscriptions WHERE user_id = ?"), userID)
	return errors.Wrap(err, "deleting subscription")
}
