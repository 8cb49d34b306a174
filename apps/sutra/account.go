package main

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/dailysutra/client"
	"github.com/trezcool/dailysutra/core/subscription"
)

var readPasswordFunc = term.ReadPassword // mockable

type LoginCmd struct {
	Email string `required:"" help:"Account email. The password is prompted next."`
}

func (cmd *LoginCmd) Run(c *Context) error {
	c.printf("Password: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	c.printf("\n")
	if err != nil {
		return errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return errors.New("a password is required")
	}

	token, err := c.API.Login(c, cmd.Email, string(pwd))
	if err != nil {
		return errors.Wrap(err, "signing in")
	}
	c.session.Email = cmd.Email
	c.session.Token = token
	if err = c.Store.SaveSession(c.session); err != nil {
		return err
	}

	// mirror the local journey now
	c.hydrated = false
	c.journey()
	c.printf("Signed in as %s.\n", cmd.Email)
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(c *Context) error {
	if err := c.Store.SaveSession(client.Session{APIURL: c.session.APIURL}); err != nil {
		return err
	}
	c.printf("Signed out. Your journey stays on this device.\n")
	return nil
}

type StatusCmd struct {
	Upgrade bool `help:"Start a checkout to unlock the full 52 weeks."`
}

func (cmd *StatusCmd) Run(c *Context) error {
	c.printf("Journey file: %s\n", c.Store.Path())
	c.printf("Server: %s\n", c.session.APIURL)
	if !c.API.Authenticated() {
		c.printf("Account: signed out (the journey is kept on this device only)\n")
		if cmd.Upgrade {
			return client.ErrNotAuthenticated
		}
		return nil
	}

	me, ok := c.journey().Me()
	if !ok {
		c.printf("Account: %s (unreachable)\n", c.session.Email)
		return nil
	}
	c.printf("Account: %s\n", me.User.Email)

	sub := me.Subscription
	switch {
	case sub.IsActivePaid:
		c.printf("Subscription: active, all 52 weeks unlocked\n")
	case sub.IsTrialActive:
		c.printf("Subscription: free trial, days 1-%d unlocked\n", sub.TrialDays)
	case sub.Status == subscription.StatusNone && !me.User.EmailVerified:
		c.printf("Subscription: none, verify your email to start the free trial\n")
	default:
		c.printf("Subscription: %s\n", sub.Status)
	}

	if cmd.Upgrade && !sub.IsActivePaid {
		url, err := c.API.Checkout(c)
		if err != nil {
			return errors.Wrap(err, "starting checkout")
		}
		c.printf("\nComplete your purchase at:\n%s\n", url)
	}
	return nil
}
