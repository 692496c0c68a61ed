package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/studyroom/backend/core/session"
)

func newHistoryCmd(app *focusApp) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded focus sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.sessions(cmd.Context())
			if err != nil {
				return err
			}
			sessions, err := svc.QueryByUser(cmd.Context(), userID, session.QueryFilter{Limit: limit})
			if err != nil {
				return err
			}
			printHistory(app, sessions)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", defaultUser, "user whose sessions are listed")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of sessions")
	return cmd
}

func printHistory(app *focusApp, sessions []session.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(app.out, mutedStyle.Render("no sessions recorded yet"))
		return
	}

	now := app.now()
	var minutes int64
	for _, sess := range sessions {
		minutes += int64(sess.DurationMinutes.Int)
		note := sess.Notes.String
		if note == "" {
			note = string(sess.SessionType)
		}
		fmt.Fprintf(app.out, "%-16s %3d min  %s\n",
			humanize.RelTime(sess.StartTime, now, "ago", "from now"),
			sess.DurationMinutes.Int,
			note,
		)
	}
	fmt.Fprintln(app.out, mutedStyle.Render(fmt.Sprintf("%s sessions, %s minutes focused",
		humanize.Comma(int64(len(sessions))), humanize.Comma(minutes))))
}
