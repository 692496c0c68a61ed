package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(app *focusApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "focus",
		Short:        "StudyRoom focus timer and schedule tools",
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.out)
	rootCmd.SetErr(app.out)

	rootCmd.AddCommand(
		newStartCmd(app),
		newSettingsCmd(app),
		newHistoryCmd(app),
		newScheduleCmd(app),
	)
	return rootCmd
}
