package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
)

const engineSQLite = "sqlite"

var (
	errHelp          = errors.New("help provided")
	errMigrateSQLite = errors.New("migrations only apply to postgres; the sqlite schema is created on open")
)

type commandLine struct {
	db       *sqlx.DB
	engine   string
	schedSvc schedule.ServiceInterface
	sessSvc  session.ServiceInterface
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                        - run a goose command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  exportcalendar -schedule ID [-out FILE]       - write a schedule's daily events as an .ics file")
	fmt.Fprintln(cli.out, "  sessions -user ID [-limit N] [-ordering F]    - list a user's study sessions")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("exportcalendar", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportSchedule := exportCmd.String("schedule", "", "The ID of the schedule to export.")
	exportOut := exportCmd.String("out", "", "The file to write. Defaults to stdout.")

	sessionsCmd := flag.NewFlagSet("sessions", flag.ContinueOnError)
	sessionsCmd.SetOutput(cli.out)
	sessionsUser := sessionsCmd.String("user", "", "The ID of the user.")
	sessionsLimit := sessionsCmd.Int("limit", 20, "The maximum number of sessions to list.")
	sessionsOrdering := sessionsCmd.String("ordering", "-start_time", "Comma separated fields, prefixed with - for descending order.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "exportcalendar":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportSchedule == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportCalendar(*exportSchedule, *exportOut)
	case "sessions":
		if err := sessionsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *sessionsUser == "" {
			sessionsCmd.Usage()
			return errHelp
		}
		return cli.listSessions(*sessionsUser, *sessionsLimit, *sessionsOrdering)
	default:
		cli.printUsage()
		return errHelp
	}
}
