package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	dig_container "github.com/studyroom/backend/apps/api/di/dig"
	echoapi "github.com/studyroom/backend/apps/api/echo"
	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/storage/database"
)

func main() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		dbLoggerParam dig_container.DBLoggerParam,
		db *sqlx.DB,
		validate *validator.Validate,
		translator ut.Translator,
		server *echoapi.Server,
	) {
		apiLogger.Info(fmt.Sprintf("starting studyroom api %q (env %s, database %s, ai model %s)",
			conf.Build, conf.Env, conf.Database.Engine, conf.AI.Model))

		core.InitValidators(validate, translator)

		dbLogger := dbLoggerParam.Logger
		defer func() {
			if err := db.Close(); err != nil {
				dbLogger.Fatal("Failed to close", err)
			}
		}()
		defer apiLogger.Info("studyroom api stopped")

		publishVars(conf, db)
		go serveDebug(conf.Server.DebugHost, apiLogger)
		go server.Start()

		select {
		case err := <-server.Errors():
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)
		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: shutting down", sig))
			shutdown(server, conf.Server.ShutdownTimeout, apiLogger)
		}
	}))
}

// publishVars exposes build info and database health under /debug/vars.
func publishVars(conf *core.Config, db *sqlx.DB) {
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("dbEngine").Set(conf.Database.Engine)
	expvar.NewString("aiModel").Set(conf.AI.Model)
	expvar.Publish("db", expvar.Func(func() interface{} {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		status := "ok"
		if err := database.StatusCheck(ctx, db); err != nil {
			status = err.Error()
		}
		stats := db.Stats()
		return map[string]interface{}{
			"status":          status,
			"openConnections": stats.OpenConnections,
			"inUse":           stats.InUse,
			"idle":            stats.Idle,
		}
	}))
}

func serveDebug(host string, logger core.Logger) {
	if err := http.ListenAndServe(host, http.DefaultServeMux); err != nil {
		logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
	}
}

// shutdown drains outstanding requests until timeout, then closes the listener outright.
func shutdown(server *echoapi.Server, timeout time.Duration, logger core.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		if err = server.Close(); err != nil {
			logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
