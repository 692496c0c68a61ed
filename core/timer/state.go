package timer

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Mode is a phase of the focus cycle.
type Mode string

const (
	Work       Mode = "work"
	ShortBreak Mode = "short_break"
	LongBreak  Mode = "long_break"
)

var ErrUnknownMode = errors.New("unknown timer mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Work, ShortBreak, LongBreak:
		return m, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

func (m Mode) Label() string {
	switch m {
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return "Focus Time"
	}
}

// State is a snapshot of the engine.
type State struct {
	Mode              Mode `json:"mode"`
	RemainingSeconds  int  `json:"remainingSeconds"`
	Running           bool `json:"running"`
	SessionsCompleted int  `json:"sessionsCompleted"`
}

// Clock renders the remaining time as MM:SS.
func (st State) Clock() string {
	return FormatClock(st.RemainingSeconds)
}

// Progress is the elapsed share of the current phase, in percent.
func (st State) Progress(s Settings) float64 {
	total := s.Seconds(st.Mode)
	if total <= 0 {
		return 0
	}
	return float64(total-st.RemainingSeconds) / float64(total) * 100
}

func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Completion describes a finished phase.
type Completion struct {
	From              Mode
	To                Mode
	SessionsCompleted int
	At                time.Time
}
