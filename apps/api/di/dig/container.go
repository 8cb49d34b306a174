package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/dailysutra/apps/api/echo"
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

const redisConnectTimeout = 5 * time.Second

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if conf.Database.Engine == core.EnginePostgres {
			if err := database.CreateIfNotExist(conf); err != nil {
				return nil, err
			}
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newRedisClient returns nil when Redis is not configured or unreachable.
func newRedisClient(conf *core.Config, logger core.Logger) cachesvc.RedisClient {
	if conf.Redis.Addr == "" {
		logger.Info("redis not configured: content cache disabled, webhook events tracked in memory")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	client, err := cachesvc.NewRedisClient(ctx, conf)
	if err != nil {
		logger.Warn("redis unavailable: content cache disabled, webhook events tracked in memory", err)
		return nil
	}
	return client
}

func newContentCache(client cachesvc.RedisClient, conf *core.Config) content.Cache {
	if client == nil {
		return nil
	}
	return cachesvc.NewCache(client, conf)
}

func newEventLog(client cachesvc.RedisClient, conf *core.Config) billing.EventLog {
	if client == nil {
		return cachesvc.NewMemoryEventLog(conf)
	}
	return cachesvc.NewEventLog(client, conf)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newPushSender(conf *core.Config, logger core.Logger) notification.Sender {
	if conf.Notification.FirebaseServiceAccount == "" {
		return pushsvc.NewConsoleSender(logger)
	}
	sender, err := pushsvc.NewFCMSender(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up push notifications: %v", err), err)
	}
	return sender
}

func newPaymentProvider(conf *core.Config, logger core.Logger) billing.Provider {
	if conf.Debug && conf.Stripe.SecretKey == "" {
		logger.Warn("stripe not configured: using the mock payment provider")
		return paymentsvc.NewMockProvider()
	}
	return paymentsvc.NewStripeProvider(conf)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

type serverParams struct {
	dig.In

	Conf            *core.Config
	Logger          core.Logger
	Validate        *validator.Validate
	Translator      ut.Translator
	Registry        prometheus.Registerer
	UserSvc         user.Service
	SubscriptionSvc subscription.Service
	JourneySvc      journey.Service
	ContentSvc      content.Service
	BillingSvc      billing.Service
	NotificationSvc notification.Service
	AccountSvc      account.Service
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		Registry:        p.Registry,
		UserSvc:         p.UserSvc,
		SubscriptionSvc: p.SubscriptionSvc,
		JourneySvc:      p.JourneySvc,
		ContentSvc:      p.ContentSvc,
		BillingSvc:      p.BillingSvc,
		NotificationSvc: p.NotificationSvc,
		AccountSvc:      p.AccountSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	// config, logging & infrastructure
	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRedisClient))
	must(c.Provide(newContentCache))
	must(c.Provide(newEventLog))
	must(c.Provide(newEmailService))
	must(c.Provide(newPushSender))
	must(c.Provide(newPaymentProvider))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(newRegisterer))

	// repositories
	must(c.Provide(sqlxrepos.NewUserRepository, dig.As(new(user.Repository))))
	must(c.Provide(sqlxrepos.NewSubscriptionRepository, dig.As(new(subscription.Repository))))
	must(c.Provide(sqlxrepos.NewJourneyRepository, dig.As(new(journey.Repository))))
	must(c.Provide(sqlxrepos.NewNotificationRepository, dig.As(new(notification.Repository))))
	must(c.Provide(sqlxrepos.NewContentRepository, dig.As(new(content.Repository))))

	// services
	must(c.Provide(subscription.NewService))
	must(c.Provide(user.NewService))
	must(c.Provide(journey.NewService))
	must(c.Provide(notification.NewService))
	must(c.Provide(content.NewService))
	must(c.Provide(billing.NewService))
	must(c.Provide(account.NewService))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
