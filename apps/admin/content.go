package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/assets"
)

// remind sends the reminders due during the current hour. Run it hourly from cron.
func (cli *commandLine) remind() error {
	reached, err := cli.notifSvc.SendReminders(context.Background(), nowFunc())
	if err != nil {
		return err
	}
	cli.logger.Info(fmt.Sprintf("daily reminders sent to %d user(s)", reached))
	return nil
}

func (cli *commandLine) seed(path string) error {
	var r io.ReadCloser
	var err error
	if path == "" {
		r, err = assets.FS.Open(assets.ContentPack)
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return errors.Wrap(err, "opening content pack")
	}
	defer r.Close()

	res, err := cli.contentSvc.Seed(context.Background(), r)
	if err != nil {
		return err
	}
	cli.logger.Info(fmt.Sprintf("seeded %d sūtra(s) & %d glossary term(s)", res.Sutras, res.Terms))
	return nil
}
