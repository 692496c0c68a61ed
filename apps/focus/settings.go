package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyroom/backend/core/timer"
	settingsfile "github.com/studyroom/backend/storage/settings"
)

func newSettingsCmd(app *focusApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update the timer durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.loadSettings()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			changed := false
			for name, dst := range map[string]*int{
				"work":     &settings.WorkDuration,
				"short":    &settings.ShortBreakDuration,
				"long":     &settings.LongBreakDuration,
				"sessions": &settings.SessionsUntilLongBreak,
			} {
				if flags.Changed(name) {
					v, _ := flags.GetInt(name)
					*dst = v
					changed = true
				}
			}
			if changed {
				if err = settingsfile.Save(app.conf.Timer.SettingsPath, settings); err != nil {
					return err
				}
			}

			printSettings(app, settings)
			return nil
		},
	}
	cmd.Flags().Int("work", 0, "focus phase length in minutes (1-60)")
	cmd.Flags().Int("short", 0, "short break length in minutes (1-30)")
	cmd.Flags().Int("long", 0, "long break length in minutes (1-60)")
	cmd.Flags().Int("sessions", 0, "focus sessions before a long break (1-10)")
	return cmd
}

func printSettings(app *focusApp, s timer.Settings) {
	fmt.Fprintf(app.out, "%s %3d min\n", labelStyle.Render("work            "), s.WorkDuration)
	fmt.Fprintf(app.out, "%s %3d min\n", labelStyle.Render("short break     "), s.ShortBreakDuration)
	fmt.Fprintf(app.out, "%s %3d min\n", labelStyle.Render("long break      "), s.LongBreakDuration)
	fmt.Fprintf(app.out, "%s %3d sessions\n", labelStyle.Render("long break every"), s.SessionsUntilLongBreak)
}
