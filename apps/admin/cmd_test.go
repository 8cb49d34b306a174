package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
	pushsvc "github.com/trezcool/dailysutra/services/push"
	sqlxrepos "github.com/trezcool/dailysutra/storage/database/sqlx"
	"github.com/trezcool/dailysutra/tests"
)

var (
	usrRepo user.Repository
	push    *pushsvc.ConsoleSender
)

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	db := testutil.PrepareDB(t)
	usrRepo = sqlxrepos.NewUserRepository(db)
	push = pushsvc.NewConsoleSenderMock()
	logger := testutil.NewLogger(core.NewTestConfig())

	// start CLI
	return &commandLine{
		db:         db,
		logger:     logger,
		usrRepo:    usrRepo,
		subSvc:     subscription.NewService(sqlxrepos.NewSubscriptionRepository(db)),
		notifSvc:   notification.NewService(sqlxrepos.NewNotificationRepository(db), push, logger),
		contentSvc: content.NewService(sqlxrepos.NewContentRepository(db), nil, logger),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITest(t *testing.T, cli *commandLine, tt cliTest) error {
	t.Helper()
	err := cli.run(append([]string{"admin"}, tt.args...))
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
	return err
}

func mockPassword(t *testing.T, pwd string) {
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = nil })
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var gotCommand string
	gooseRunFunc = func(command string, db *sqlx.DB, args ...string) error {
		gotCommand = command
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "reflections", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCommand = ""
			runCLITest(t, cli, tt)
			if len(tt.args) > 1 {
				assert.Equal(t, tt.args[1], gotCommand)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no email", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-email", "jane@test.cd"}, wantErr: errHelp},
		{name: "created", args: []string{"adduser", "-email", " Jane@Test.cd ", "-name", "Jane"}, extra: "s3cret-pwd"},
		{name: "promoted", args: []string{"adduser", "-email", "jane@test.cd", "-admin"}, extra: "other-pwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pwd, _ := tt.extra.(string)
			mockPassword(t, pwd)
			runCLITest(t, cli, tt)
		})
	}

	usr, err := usrRepo.GetUserByEmail(ctx, "jane@test.cd")
	require.NoError(t, err)
	assert.Equal(t, "Jane", usr.Name)
	assert.True(t, usr.IsAdmin)
	assert.True(t, usr.IsActive)
	assert.True(t, usr.EmailVerified)
	assert.NoError(t, usr.CheckPassword("other-pwd"))

	status, _, err := cli.subSvc.StatusFor(ctx, usr.ID, usr.EmailVerified)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusTrial, status)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "mdr-lol-123", true)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: "lol", wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: "lmao-1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pwd, _ := tt.extra.(string)
			mockPassword(t, pwd)
			runCLITest(t, cli, tt)
		})
	}

	refreshedUsr, err := usrRepo.GetUserByID(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.NotEqual(t, usr.PasswordHash, refreshedUsr.PasswordHash)
	assert.NoError(t, refreshedUsr.CheckPassword("lmao-1234"))
}

func Test_commandLine_setSubscription(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "mdr-lol-123", true)

	tests := []cliTest{
		{name: "no args", args: []string{"setsubscription"}, wantErr: errHelp},
		{name: "no status", args: []string{"setsubscription", "-email", usr.Email}, wantErr: errHelp},
		{name: "user not found", args: []string{"setsubscription", "-email", "lol@test.cd", "-status", "active"}, wantErr: user.ErrNotFound},
		{name: "invalid status", args: []string{"setsubscription", "-email", usr.Email, "-status", "lifetime"}, wantErr: subscription.ErrInvalidStatus},
		{name: "expired", args: []string{"setsubscription", "-email", usr.Email, "-status", "expired"}, extra: subscription.StatusExpired},
		{name: "active", args: []string{"setsubscription", "-email", usr.Email, "-status", "active"}, extra: subscription.StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCLITest(t, cli, tt); err != nil {
				return
			}
			status, _, err := cli.subSvc.StatusFor(context.Background(), usr.ID, true)
			require.NoError(t, err)
			assert.Equal(t, tt.extra, status)
		})
	}
}

func Test_commandLine_remind(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	early := testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "", true)
	late := testutil.CreateUser(t, usrRepo, "Ravi", "ravi@test.cd", "", true)
	for usr, at := range map[string]string{early.ID: "07:30", late.ID: "21:00"} {
		prefs := notification.DefaultPreferences(usr)
		prefs.Enabled = true
		prefs.ReminderTime = at
		_, err := cli.notifSvc.UpdatePreferences(ctx, usr, prefs)
		require.NoError(t, err)
		require.NoError(t, cli.notifSvc.RegisterToken(ctx, usr, "token-"+usr, notification.PlatformWeb))
	}

	nowFunc = func() time.Time { return time.Date(2026, 3, 9, 7, 10, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = time.Now })

	runCLITest(t, cli, cliTest{args: []string{"remind"}})

	sent := push.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "token-"+early.ID, sent[0].Token)
	assert.Equal(t, notification.DefaultBody, sent[0].Message.Body)
	assert.Equal(t, "daily_reminder", sent[0].Message.Data["type"])
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	badPack := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badPack, []byte("sutras: []\nglossary: []\n"), 0o600))

	tests := []cliTest{
		{name: "missing file", args: []string{"seed", "-file", filepath.Join(t.TempDir(), "nope.yaml")}, extra: true},
		{name: "empty pack", args: []string{"seed", "-file", badPack}, wantErr: content.ErrEmptyPack},
		{name: "embedded pack", args: []string{"seed"}},
		{name: "idempotent", args: []string{"seed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.extra == true {
				assert.Error(t, cli.run(append([]string{"admin"}, tt.args...)))
				return
			}
			runCLITest(t, cli, tt)
		})
	}

	sutras, err := cli.contentSvc.SutrasByBook(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, sutras, 9)
	assert.Equal(t, 1, sutras[0].Number)
}
