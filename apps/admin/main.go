package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/content"
	"github.com/trezcool/dailysutra/core/notification"
	"github.com/trezcool/dailysutra/core/subscription"
	logsvc "github.com/trezcool/dailysutra/services/logger"
	pushsvc "github.com/trezcool/dailysutra/services/push"
	"github.com/trezcool/dailysutra/storage/database"
	sqlxrepos "github.com/trezcool/dailysutra/storage/database/sqlx"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rbLogger := logsvc.NewRollbarLogger(stdLogger, conf)
	rbLogger.Enable(!conf.Debug)
	logger = rbLogger

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// push notifications
	var sender notification.Sender = pushsvc.NewConsoleSender(logger)
	if conf.Notification.FirebaseServiceAccount != "" {
		sender, err = pushsvc.NewFCMSender(context.Background(), conf)
		errAndDie(err)
	}

	// start CLI
	cli := commandLine{
		db:         db,
		logger:     logger,
		usrRepo:    sqlxrepos.NewUserRepository(db),
		subSvc:     subscription.NewService(sqlxrepos.NewSubscriptionRepository(db)),
		notifSvc:   notification.NewService(sqlxrepos.NewNotificationRepository(db), sender, logger),
		contentSvc: content.NewService(sqlxrepos.NewContentRepository(db), nil, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
