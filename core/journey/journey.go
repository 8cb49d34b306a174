// Package journey stores the remote copy of a practitioner's progress.
// Writes are always filtered to the days & weeks the practitioner is entitled to.
package journey

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
)

const DefaultID = "default"

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound    = errors.New("journey not found")
	ErrNotEntitled = errors.New("this content is not included in your subscription")
)

// Document is a stored journey.
type Document struct {
	UserID    string
	JourneyID string
	State     progress.State
	UpdatedAt time.Time // UTC
}

type (
	Repository interface {
		GetJourney(ctx context.Context, userID, journeyID string) (Document, error)
		// UpdateJourney saves what `update` makes of the stored state (the initial one for a new document).
		// Concurrent updates of the same document are serialised.
		UpdateJourney(
			ctx context.Context,
			userID, journeyID string,
			updatedAt time.Time,
			update func(state progress.State) (progress.State, error),
		) (Document, error)
		DeleteJourneys(ctx context.Context, userID string) error
	}

	Service interface {
		Get(ctx context.Context, userID string) (progress.State, error)
		// Merge overlays the entitled part of `incoming` onto the stored document, per day & week key.
		Merge(ctx context.Context, userID string, incoming progress.State, access subscription.Access) (progress.State, error)
		// Replace overwrites the entitled part of the stored document with that of `state`.
		Replace(ctx context.Context, userID string, state progress.State, access subscription.Access) (progress.State, error)
		// Apply runs `action` against the stored document.
		Apply(ctx context.Context, userID string, action progress.Action, access subscription.Access) (progress.State, error)
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

func (svc *service) Get(ctx context.Context, userID string) (progress.State, error) {
	doc, err := svc.repo.GetJourney(ctx, userID, DefaultID)
	if err != nil {
		return progress.State{}, err
	}
	return doc.State, nil
}

func (svc *service) update(
	ctx context.Context,
	userID string,
	update func(state progress.State) (progress.State, error),
) (progress.State, error) {
	doc, err := svc.repo.UpdateJourney(ctx, userID, DefaultID, NowFunc().UTC(), update)
	if err != nil {
		return progress.State{}, errors.Wrap(err, "updating journey")
	}
	return doc.State, nil
}

func (svc *service) Merge(ctx context.Context, userID string, incoming progress.State, access subscription.Access) (progress.State, error) {
	if !access.CanEditJourney() {
		return progress.State{}, ErrNotEntitled
	}
	entitled := progress.FilterEntitled(incoming, access.CanAccessDay)
	return svc.update(ctx, userID, func(stored progress.State) (progress.State, error) {
		return progress.Merge(stored, entitled), nil
	})
}

func (svc *service) Replace(ctx context.Context, userID string, state progress.State, access subscription.Access) (progress.State, error) {
	if !access.CanEditJourney() {
		return progress.State{}, ErrNotEntitled
	}
	return svc.update(ctx, userID, func(stored progress.State) (progress.State, error) {
		return progress.ReplaceEntitled(stored, state, access.CanAccessDay), nil
	})
}

func (svc *service) Apply(ctx context.Context, userID string, action progress.Action, access subscription.Access) (progress.State, error) {
	if !access.CanEditJourney() {
		return progress.State{}, ErrNotEntitled
	}
	switch {
	case action.TargetsDay() && !access.CanAccessDay(action.DayNumber()):
		return progress.State{}, ErrNotEntitled
	case action.TargetsWeek() && !access.CanAccessWeek(action.WeekNumber()):
		return progress.State{}, ErrNotEntitled
	}

	return svc.update(ctx, userID, func(stored progress.State) (progress.State, error) {
		// reset & hydrate only reach the entitled entries
		return progress.ReplaceEntitled(stored, progress.Reduce(stored, action), access.CanAccessDay), nil
	})
}

func (svc *service) Delete(ctx context.Context, userID string) error {
	return svc.repo.DeleteJourneys(ctx, userID)
}
