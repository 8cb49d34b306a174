// Package account deletes a practitioner's account along with everything stored about them.
package account

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/progress"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

var ErrForbidden = errors.New("you can only delete your own account")

type (
	Service interface {
		// Delete removes the account `uid` on behalf of `requesterID`.
		// Related data is deleted concurrently; each failure is logged & does not stop the others.
		Delete(ctx context.Context, requesterID, uid string) error
	}

	service struct {
		usrSvc     user.Service
		journeySvc journey.Service
		notifSvc   notification.Service
		subSvc     subscription.Service
		logger     core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	usrSvc user.Service,
	journeySvc journey.Service,
	notifSvc notification.Service,
	subSvc subscription.Service,
	logger core.Logger,
) Service {
	return &service{
		usrSvc:     usrSvc,
		journeySvc: journeySvc,
		notifSvc:   notifSvc,
		subSvc:     subSvc,
		logger:     logger,
	}
}

func (svc *service) Delete(ctx context.Context, requesterID, uid string) error {
	if uid == "" {
		return core.NewRequiredFieldsError("uid")
	}
	if uid != requesterID {
		return ErrForbidden
	}

	usr, err := svc.usrSvc.GetByID(ctx, uid)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	export := svc.exportJourney(ctx, usr)

	var g errgroup.Group
	for name, del := range map[string]func(context.Context, string) error{
		"journeys":                 svc.journeySvc.Delete,
		"push tokens":              svc.notifSvc.DeleteTokens,
		"notification preferences": svc.notifSvc.DeletePreferences,
		"subscription":             svc.subSvc.Delete,
	} {
		name, del := name, del
		g.Go(func() error {
			if err := del(ctx, uid); err != nil {
				svc.logger.Error("deleting "+name, errors.Wrap(err, "deleting "+name), usr)
			}
			return nil // delete what we can
		})
	}
	_ = g.Wait()

	if err = svc.usrSvc.Delete(ctx, uid); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	svc.usrSvc.SendGoodbye(usr, export)
	return nil
}

// exportJourney returns the last export of the user's journey, nil when there is none.
func (svc *service) exportJourney(ctx context.Context, usr user.User) []byte {
	state, err := svc.journeySvc.Get(ctx, usr.ID)
	if err != nil {
		if errors.Cause(err) != journey.ErrNotFound {
			svc.logger.Warn("exporting journey", err, usr)
		}
		return nil
	}
	data, err := progress.Export(state)
	if err != nil {
		svc.logger.Warn("exporting journey", err, usr)
		return nil
	}
	return data
}
