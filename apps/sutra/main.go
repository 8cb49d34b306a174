package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/client"
	"github.com/trezcool/dailysutra/core"
	logsvc "github.com/trezcool/dailysutra/services/logger"
)

type sutraCLI struct {
	DataDir string `help:"Directory holding the local journey." type:"path" default:"~/.config/dailysutra" env:"SUTRA_DATA_DIR"`
	APIURL  string `name:"api-url" help:"Daily Sutra API to mirror the journey to." env:"SUTRA_API_URL"`
	TZ      string `name:"tz" help:"IANA time zone of the practice calendar (defaults to the local one)." env:"SUTRA_TZ"`

	Today     TodayCmd     `cmd:"" default:"1" help:"Show today's practice."`
	Day       DayCmd       `cmd:"" help:"Show a day of the program."`
	Practice  PracticeCmd  `cmd:"" help:"Toggle the practice check-in of a day."`
	Note      NoteCmd      `cmd:"" help:"Write the note of a day."`
	Week      WeekCmd      `cmd:"" help:"Show & mark a week of the program."`
	StartDate StartDateCmd `cmd:"" name:"start-date" help:"Set the journey start date."`
	Stats     StatsCmd     `cmd:"" help:"Show the journey statistics."`
	History   HistoryCmd   `cmd:"" help:"List the latest recorded days."`
	Share     ShareCmd     `cmd:"" help:"Print a shareable text."`
	Export    ExportCmd    `cmd:"" help:"Export the journey as JSON."`
	Import    ImportCmd    `cmd:"" help:"Replace the journey with an export file."`
	Reset     ResetCmd     `cmd:"" help:"Erase the whole journey."`
	Login     LoginCmd     `cmd:"" help:"Sign in to mirror the journey to your account."`
	Logout    LogoutCmd    `cmd:"" help:"Sign out; the journey stays on this device."`
	Status    StatusCmd    `cmd:"" help:"Show the account, subscription & sync status."`
}

// Context is handed to every command.
type Context struct {
	context.Context

	Store  *client.LocalStore
	API    *client.API
	Mirror *client.Mirror
	Loc    *time.Location
	Out    io.Writer
	Logger core.Logger

	session  client.Session
	hydrated bool
}

// journey hydrates the mirror on first use.
func (c *Context) journey() *client.Mirror {
	if !c.hydrated {
		c.Mirror.Hydrate(c)
		c.hydrated = true
	}
	return c.Mirror
}

func (c *Context) now() time.Time { return nowFunc().In(c.Loc) }

func (c *Context) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.Out, format, args...)
}

func newLogger(w io.Writer) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(w, "SUTRA : ", 0), &core.Config{})
	logger.Enable(false)
	return logger
}

func newContext(ctx context.Context, cli *sutraCLI, out, errOut io.Writer, httpClient *http.Client) (*Context, error) {
	loc := time.Local
	if cli.TZ != "" {
		var err error
		if loc, err = time.LoadLocation(cli.TZ); err != nil {
			return nil, errors.Wrap(err, "loading time zone")
		}
	}

	logger := newLogger(errOut)
	store := client.NewLocalStore(cli.DataDir, logger)
	sess := store.LoadSession()
	if cli.APIURL != "" {
		sess.APIURL = cli.APIURL
	}
	if sess.APIURL == "" {
		sess.APIURL = client.DefaultAPIURL
	}
	api := client.NewAPI(sess.APIURL, sess.Token, httpClient)

	return &Context{
		Context: ctx,
		Store:   store,
		API:     api,
		Mirror:  client.NewMirror(store, api, logger),
		Loc:     loc,
		Out:     out,
		Logger:  logger,
		session: sess,
	}, nil
}

func run(args []string, out, errOut io.Writer, httpClient *http.Client, options ...kong.Option) error {
	options = append([]kong.Option{
		kong.Name("sutra"),
		kong.Description("A 52-week journey through the Yoga Sūtras, one day at a time."),
		kong.UsageOnError(),
		kong.Writers(out, errOut),
	}, options...)
	var cli sutraCLI
	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	appCtx, err := newContext(context.Background(), &cli, out, errOut, httpClient)
	if err != nil {
		return err
	}
	err = kctx.Run(appCtx)
	if banner := appCtx.Mirror.Banner(); banner != "" {
		_, _ = fmt.Fprintf(errOut, "\n⚠ %s\n", banner)
	}
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
