package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/studyroom/backend/apps/api/echo"
	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
	aisvc "github.com/studyroom/backend/services/ai"
	logsvc "github.com/studyroom/backend/services/logger"
	"github.com/studyroom/backend/storage/database"
	sqlitedb "github.com/studyroom/backend/storage/database/sqlite"
	sqlxrepos "github.com/studyroom/backend/storage/database/sqlx"
)

const engineSQLite = "sqlite"

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

// newDB opens the configured database, creating and migrating it as needed.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if conf.Database.Engine == engineSQLite {
			return sqlitedb.Open(context.Background(), conf.Database.Path)
		}

		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
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

func newGenerator(conf *core.Config, logger core.Logger) aisvc.Generator {
	return aisvc.NewClient(conf, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(sqlxrepos.NewSessionRepository))
	must(c.Provide(sqlxrepos.NewScheduleRepository))
	must(c.Provide(session.NewService, dig.As(new(session.ServiceInterface))))
	must(c.Provide(schedule.NewService, dig.As(new(schedule.ServiceInterface))))
	must(c.Provide(newGenerator))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
