package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/session"
	"github.com/studyroom/backend/core/timer"
	logsvc "github.com/studyroom/backend/services/logger"
	sqlitedb "github.com/studyroom/backend/storage/database/sqlite"
	sqlxrepos "github.com/studyroom/backend/storage/database/sqlx"
	settingsfile "github.com/studyroom/backend/storage/settings"
)

const defaultUser = "local"

// focusApp holds what the focus commands share: config, terminal streams and the lazily opened session store.
type focusApp struct {
	conf   *core.Config
	in     io.Reader
	out    io.Writer
	logger *logsvc.RollbarLogger
	now    func() time.Time

	db      *sqlx.DB
	sessSvc *session.Service
}

func newFocusApp(conf *core.Config, in io.Reader, out io.Writer) *focusApp {
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "FOCUS : ", log.LstdFlags), conf)
	logger.Enable(!conf.Debug)
	return &focusApp{
		conf:   conf,
		in:     in,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// sessions opens the local sqlite store on first use.
func (app *focusApp) sessions(ctx context.Context) (*session.Service, error) {
	if app.sessSvc != nil {
		return app.sessSvc, nil
	}
	db, err := sqlitedb.Open(ctx, app.conf.Timer.StorePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening session store")
	}
	app.db = db
	app.sessSvc = session.NewService(sqlxrepos.NewSessionRepository(db))
	return app.sessSvc, nil
}

func (app *focusApp) loadSettings() (timer.Settings, error) {
	return settingsfile.Load(app.conf.Timer.SettingsPath, timer.SettingsFromConfig(app.conf))
}

func (app *focusApp) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("closing session store", err)
		}
		app.db = nil
		app.sessSvc = nil
	}
	app.logger.Flush()
}
