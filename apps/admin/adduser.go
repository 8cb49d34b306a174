package main

import (
	"context"
	"time"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/user"
)

// addUser updates or creates a verified, active user.User
func (cli *commandLine) addUser(name, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)
	now := nowFunc().UTC()

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	created := false
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{Email: email, CreatedAt: now}
		created = true
	}
	if name != "" {
		usr.Name = name
	}
	if isAdmin {
		usr.IsAdmin = true
	}
	usr.IsActive = true
	usr.EmailVerified = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if created {
		usr, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		usr, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	if err != nil {
		return err
	}
	if _, err = cli.subSvc.StartTrial(ctx, usr.ID); err != nil {
		return err
	}
	cli.logger.Info("user saved: " + usr.Email + " (" + usr.ID + ") at " + now.Format(time.RFC3339))
	return nil
}
