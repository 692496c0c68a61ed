package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/session"
)

func (cli *commandLine) exportCalendar(scheduleID, path string) error {
	doc, err := cli.schedSvc.Calendar(context.Background(), scheduleID)
	if err != nil {
		return err
	}
	if strings.Count(doc, "BEGIN:VEVENT") == 0 {
		logger.Warn(fmt.Sprintf("schedule %s has no timed blocks", scheduleID))
	}

	if path == "" {
		_, err = fmt.Fprint(cli.out, doc)
		return err
	}
	if err = ioutil.WriteFile(path, []byte(doc), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Fprintf(cli.out, "calendar written to %s (%s)\n", path, humanize.Bytes(uint64(len(doc))))
	return nil
}

func (cli *commandLine) listSessions(userID string, limit int, ordering string) error {
	filter := session.QueryFilter{Limit: limit}
	for _, field := range strings.Split(ordering, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		filter.Orderings = append(filter.Orderings, core.DBOrdering{
			Field:     strings.TrimPrefix(field, "-"),
			Ascending: !strings.HasPrefix(field, "-"),
		})
	}

	sessions, err := cli.sessSvc.QueryByUser(context.Background(), userID, filter)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(cli.out, "no sessions")
		return nil
	}

	var total int
	for _, sess := range sessions {
		total += sess.DurationMinutes.Int
		fmt.Fprintf(cli.out, "%s  %s  %3d min  %-12s %s\n",
			sess.ID,
			sess.StartTime.Format(time.RFC3339),
			sess.DurationMinutes.Int,
			sess.SessionType,
			humanize.Time(sess.StartTime),
		)
	}
	fmt.Fprintf(cli.out, "%s sessions, %s minutes\n", humanize.Comma(int64(len(sessions))), humanize.Comma(int64(total)))
	return nil
}
