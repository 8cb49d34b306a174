package subscription

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound      = errors.New("subscription not found")
	ErrInvalidStatus = errors.New("invalid subscription status")
)

type (
	Repository interface {
		GetSubscription(ctx context.Context, userID string) (Record, error)
		// CreateSubscription inserts rec unless the user already has a subscription.
		CreateSubscription(ctx context.Context, rec Record) error
		// SaveSubscription inserts rec, or overwrites everything but created_at of the existing one.
		SaveSubscription(ctx context.Context, rec Record) error
		DeleteSubscription(ctx context.Context, userID string) error
	}

	Service interface {
		// StatusFor returns the status of a user, starting their trial on first access.
		// Users with an unverified email have no subscription.
		StatusFor(ctx context.Context, userID string, emailVerified bool) (Status, Record, error)
		StartTrial(ctx context.Context, userID string) (Record, error)
		Upgrade(ctx context.Context, userID string) (Record, error)
		SetStatus(ctx context.Context, userID string, status Status) (Record, error)
		Delete(ctx context.Context, userID string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) StatusFor(ctx context.Context, userID string, emailVerified bool) (Status, Record, error) {
	if userID == "" || !emailVerified {
		return StatusNone, Record{}, nil
	}
	rec, err := svc.StartTrial(ctx, userID)
	if err != nil {
		return StatusNone, Record{}, err
	}
	if !rec.Status.Valid() {
		return StatusNone, rec, nil
	}
	return rec.Status, rec, nil
}

func (svc *service) StartTrial(ctx context.Context, userID string) (Record, error) {
	now := NowFunc().UTC()
	rec := Record{
		UserID:         userID,
		Status:         StatusTrial,
		TrialStartedAt: null.TimeFrom(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := svc.repo.CreateSubscription(ctx, rec); err != nil {
		return Record{}, errors.Wrap(err, "creating trial subscription")
	}
	rec, err := svc.repo.GetSubscription(ctx, userID)
	return rec, errors.Wrap(err, "getting subscription")
}

func (svc *service) Upgrade(ctx context.Context, userID string) (Record, error) {
	old, err := svc.repo.GetSubscription(ctx, userID)
	switch {
	case err == nil && old.Status == StatusActive:
		return old, nil // already upgraded
	case err != nil && errors.Cause(err) != ErrNotFound:
		return Record{}, errors.Wrap(err, "getting subscription")
	}

	now := NowFunc().UTC()
	rec := Record{
		UserID:         userID,
		Status:         StatusActive,
		TrialStartedAt: old.TrialStartedAt,
		UpgradedAt:     null.TimeFrom(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err = svc.repo.SaveSubscription(ctx, rec); err != nil {
		return Record{}, errors.Wrap(err, "saving subscription")
	}
	rec, err = svc.repo.GetSubscription(ctx, userID)
	return rec, errors.Wrap(err, "getting subscription")
}

func (svc *service) SetStatus(ctx context.Context, userID string, status Status) (Record, error) {
	if !status.Valid() {
		return Record{}, ErrInvalidStatus
	}
	if status == StatusActive {
		return svc.Upgrade(ctx, userID)
	}

	now := NowFunc().UTC()
	rec := Record{UserID: userID, Status: status, CreatedAt: now, UpdatedAt: now}
	if old, err := svc.repo.GetSubscription(ctx, userID); err == nil {
		rec.TrialStartedAt = old.TrialStartedAt
		rec.UpgradedAt = old.UpgradedAt
	}
	if status == StatusTrial {
		rec.TrialStartedAt = null.TimeFrom(now)
	}
	if err := svc.repo.SaveSubscription(ctx, rec); err != nil {
		return Record{}, errors.Wrap(err, "saving subscription")
	}
	rec, err := svc.repo.GetSubscription(ctx, userID)
	return rec, errors.Wrap(err, "getting subscription")
}

func (svc *service) Delete(ctx context.Context, userID string) error {
	return svc.repo.DeleteSubscription(ctx, userID)
}
