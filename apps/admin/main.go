package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
	logsvc "github.com/studyroom/backend/services/logger"
	"github.com/studyroom/backend/storage/database"
	sqlitedb "github.com/studyroom/backend/storage/database/sqlite"
	sqlxrepos "github.com/studyroom/backend/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	rLogger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	rLogger.Enable(!conf.Debug)
	logger = rLogger

	// set up DB
	db, err := openDB(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:       db,
		engine:   conf.Database.Engine,
		schedSvc: schedule.NewService(sqlxrepos.NewScheduleRepository(db), conf),
		sessSvc:  session.NewService(sqlxrepos.NewSessionRepository(db)),
		out:      os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	rLogger.Flush()
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func openDB(conf *core.Config) (*sqlx.DB, error) {
	if conf.Database.Engine == engineSQLite {
		return sqlitedb.Open(context.Background(), conf.Database.Path)
	}
	return database.Open(conf)
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
