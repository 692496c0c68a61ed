package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/timer"
)

const bell = "\a"

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	toastStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

	modeColors = map[timer.Mode]lipgloss.Color{
		timer.Work:       lipgloss.Color("#6366F1"),
		timer.ShortBreak: lipgloss.Color("#10B981"),
		timer.LongBreak:  lipgloss.Color("#F59E0B"),
	}
)

const keyHelp = "space start/pause · r reset · w/s/l switch mode · q quit"

// renderState draws the countdown line: mode, MM:SS, progress and completed sessions.
func renderState(st timer.State, settings timer.Settings) string {
	clock := lipgloss.NewStyle().Bold(true).Foreground(modeColors[st.Mode]).Render(st.Clock())
	status := "paused"
	if st.Running {
		status = "running"
	}
	return fmt.Sprintf("%s  %s  %s",
		labelStyle.Render(fmt.Sprintf("%-11s", st.Mode.Label())),
		clock,
		mutedStyle.Render(fmt.Sprintf("%3.0f%%  sessions %d  %s", st.Progress(settings), st.SessionsCompleted, status)),
	)
}

// renderToast announces a finished phase and rings the terminal bell.
func renderToast(c timer.Completion) string {
	var msg string
	switch c.From {
	case timer.Work:
		msg = fmt.Sprintf("Focus session %d complete! Time for a %s.", c.SessionsCompleted, strings.ToLower(c.To.Label()))
	default:
		msg = "Break over! Ready to focus?"
	}
	return bell + toastStyle.Render(msg)
}

func renderError(err error) string {
	return errorStyle.Render(err.Error())
}

func renderSegment(seg schedule.Segment) string {
	switch seg.Kind {
	case schedule.KindSectionHeader:
		return "\n" + headerStyle.Render(seg.Text)
	case schedule.KindTimedBlock:
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render(fmt.Sprintf("[%s]", seg.Icon))
		times := labelStyle.Render(fmt.Sprintf("%s - %s", seg.StartTime, seg.EndTime))
		return fmt.Sprintf("%s %s  %s", icon, times, seg.Description)
	case schedule.KindTip:
		return mutedStyle.Render("  • " + seg.Text)
	default:
		return seg.Text
	}
}
