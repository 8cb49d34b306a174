package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	nowFunc          = time.Now          // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sqlx.DB
	logger     core.Logger
	usrRepo    user.Repository
	subSvc     subscription.Service
	notifSvc   notification.Service
	contentSvc content.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...)")
	fmt.Println("  adduser -email EMAIL [-name NAME] [-admin] - create or update a verified user")
	fmt.Println("  resetpassword -email EMAIL - reset user's password")
	fmt.Println("  setsubscription -email EMAIL -status none|trial|active|expired - set user's subscription status")
	fmt.Println("  remind - send the daily reminders due now")
	fmt.Println("  seed [-file PATH] - load a sūtra content pack (defaults to the embedded one)")
}

func (cli *commandLine) promptPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant admin rights.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	setSubCmd := flag.NewFlagSet("setsubscription", flag.ContinueOnError)
	setSubEmail := setSubCmd.String("email", "", "The user's email.")
	setSubStatus := setSubCmd.String("status", "", "The new status: none, trial, active or expired.")

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedFile := seedCmd.String("file", "", "Path to a YAML content pack.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword(addUserCmd)
		if err != nil {
			return err
		}
		return cli.addUser(*addUserName, *addUserEmail, pwd, *addUserAdmin)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)

	case "setsubscription":
		if err := setSubCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *setSubEmail == "" || *setSubStatus == "" {
			setSubCmd.Usage()
			return errHelp
		}
		return cli.setSubscription(*setSubEmail, subscription.Status(*setSubStatus))

	case "remind":
		return cli.remind()

	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.seed(*seedFile)

	default:
		cli.printUsage()
		return errHelp
	}
}
