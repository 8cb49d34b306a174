package main

import (
	"context"
	"fmt"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/subscription"
)

func (cli *commandLine) setSubscription(email string, status subscription.Status) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	rec, err := cli.subSvc.SetStatus(ctx, usr.ID, status)
	if err != nil {
		return err
	}
	cli.logger.Info(fmt.Sprintf("subscription of %s is now %q", usr.Email, rec.Status))
	return nil
}
