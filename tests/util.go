package testutil

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/dailysutra/assets"
	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/account"
	"github.com/trezcool/dailysutra/core/billing"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/subscription"
	"github.com/trezcool/dailysutra/core/user"
	cachesvc "github.com/trezcool/dailysutra/services/cache"
	emailsvc "github.com/trezcool/dailysutra/services/email"
	logsvc "github.com/trezcool/dailysutra/services/logger"
	paymentsvc "github.com/trezcool/dailysutra/services/payment"
	pushsvc "github.com/trezcool/dailysutra/services/push"
	"github.com/trezcool/dailysutra/storage/database"
	sqlxrepos "github.com/trezcool/dailysutra/storage/database/sqlx"
)

// PrepareDB returns a migrated SQLite database, removed with the test's temp dir.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	goose.SetLogger(goose.NopLogger())

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	verified bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:          name,
		Email:         email,
		IsActive:      true,
		EmailVerified: verified,
		CreatedAt:     tstamp,
		UpdatedAt:     tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// NewLogger returns a silent logger.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// Services are the core services wired to a fresh database & to test doubles.
type Services struct {
	DB     *sqlx.DB
	Conf   *core.Config
	Logger core.Logger

	UserRepo user.Repository
	Push     *pushsvc.ConsoleSender
	Payment  *paymentsvc.MockProvider

	Users         user.Service
	Subscriptions subscription.Service
	Journeys      journey.Service
	Notifications notification.Service
	Content       content.Service
	Billing       billing.Service
	Accounts      account.Service
}

// NewServices prepares a database & wires every core service on it.
// Emails are sent synchronously & recorded in emailsvc.SentMessages.
func NewServices(t *testing.T, invalidPushTokens ...string) *Services {
	t.Helper()
	conf := core.NewTestConfig()
	logger := NewLogger(conf)
	core.ParseEmailTemplates(assets.FS, conf, logger)
	emailsvc.ResetSentMessages()

	db := PrepareDB(t)
	s := &Services{
		DB:       db,
		Conf:     conf,
		Logger:   logger,
		UserRepo: sqlxrepos.NewUserRepository(db),
		Push:     pushsvc.NewConsoleSenderMock(invalidPushTokens...),
		Payment:  paymentsvc.NewMockProvider(),
	}
	s.Subscriptions = subscription.NewService(sqlxrepos.NewSubscriptionRepository(db))
	s.Users = user.NewService(s.UserRepo, s.Subscriptions, emailsvc.NewConsoleServiceMock(conf), conf)
	s.Journeys = journey.NewService(sqlxrepos.NewJourneyRepository(db))
	s.Notifications = notification.NewService(sqlxrepos.NewNotificationRepository(db), s.Push, logger)
	s.Content = content.NewService(sqlxrepos.NewContentRepository(db), nil, logger)
	s.Billing = billing.NewService(s.Payment, cachesvc.NewMemoryEventLog(conf), s.Subscriptions, s.Users, logger, conf)
	s.Accounts = account.NewService(s.Users, s.Journeys, s.Notifications, s.Subscriptions, logger)
	return s
}

// TokenFromEmail extracts the uid & token of the `/<page>/<uid>/<token>` link of the last sent email.
func TokenFromEmail(t *testing.T, page string) (uid, token string) {
	t.Helper()
	msg, ok := emailsvc.LastSentMessage()
	if !ok {
		t.Fatalf("TokenFromEmail() failed: no email sent")
	}
	m := regexp.MustCompile(`/` + regexp.QuoteMeta(page) + `/([A-Za-z0-9_-]+)/([A-Za-z0-9_-]+)`).FindStringSubmatch(msg.TextContent)
	if m == nil {
		t.Fatalf("TokenFromEmail() failed: no %s link in %q", page, msg.TextContent)
	}
	return m[1], m[2]
}
