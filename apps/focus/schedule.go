package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/studyroom/backend/core/schedule"
)

const stdinArg = "-"

var errEmptySchedule = errors.New("schedule text is empty")

func newScheduleCmd(app *focusApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Work with generated study schedules",
	}
	cmd.AddCommand(newScheduleRenderCmd(app), newScheduleICSCmd(app))
	return cmd
}

func newScheduleRenderCmd(app *focusApp) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE|-",
		Short: "Print the classified lines of a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.readSchedule(args[0])
			if err != nil {
				return err
			}
			for _, seg := range schedule.Render(text) {
				fmt.Fprintln(app.out, renderSegment(seg))
			}
			return nil
		},
	}
}

func newScheduleICSCmd(app *focusApp) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "ics FILE|-",
		Short: "Print a schedule's timed blocks as a daily recurring calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := app.readSchedule(args[0])
			if err != nil {
				return err
			}
			opts := schedule.CalendarOptionsFromConfig(app.conf)
			_, err = fmt.Fprint(app.out, schedule.ExportCalendar(text, id, app.now(), opts))
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "local", "schedule id used in event UIDs")
	return cmd
}

// readSchedule reads the schedule text from path, or from the app input when path is "-".
func (app *focusApp) readSchedule(path string) (string, error) {
	var r io.Reader = app.in
	if path != stdinArg {
		f, err := os.Open(path)
		if err != nil {
			return "", errors.Wrap(err, "opening schedule")
		}
		defer f.Close()
		r = f
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "reading schedule")
	}
	if len(data) == 0 {
		return "", errEmptySchedule
	}
	return string(data), nil
}
