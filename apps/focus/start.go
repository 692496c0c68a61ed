package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studyroom/backend/core/timer"
)

const keyCtrlC = 3

func newStartCmd(app *focusApp) *cobra.Command {
	var userID, profileID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the focus timer in this terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.runStart(ctx, userID, profileID)
		},
	}
	cmd.Flags().StringVar(&userID, "user", defaultUser, "user the completed sessions are recorded for")
	cmd.Flags().StringVar(&profileID, "profile", "", "profile the completed sessions are recorded for")
	return cmd
}

func (app *focusApp) runStart(ctx context.Context, userID, profileID string) error {
	settings, err := app.loadSettings()
	if err != nil {
		return err
	}
	svc, err := app.sessions(ctx)
	if err != nil {
		return err
	}

	engine, err := timer.New(settings,
		timer.WithRecorder(svc),
		timer.WithLogger(app.logger),
		timer.WithOwner(userID, profileID),
		timer.WithRecordTimeout(app.conf.Timer.RecordTimeout),
	)
	if err != nil {
		return err
	}
	events := engine.Subscribe(64)
	if err = engine.Open(); err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if f, ok := app.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return err
		}
		defer func() { _ = term.Restore(int(f.Fd()), oldState) }()
	}

	fmt.Fprintf(app.out, "%s\r\n", mutedStyle.Render(keyHelp))
	app.loop(ctx, engine, events, readKeys(app.in))
	fmt.Fprint(app.out, "\r\n")
	return nil
}

// loop redraws the countdown on every engine event and applies key presses until quit, EOF or ctx is done.
func (app *focusApp) loop(ctx context.Context, engine *timer.Engine, events <-chan timer.Event, keys <-chan byte) {
	app.draw(engine.State(), engine.Settings())
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-keys:
			if !ok {
				return
			}
			quit, err := handleKey(engine, key)
			if err != nil {
				fmt.Fprintf(app.out, "\r\n%s\r\n", renderError(err))
			}
			if quit {
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type == timer.EventComplete && ev.Completion != nil {
				fmt.Fprintf(app.out, "\r\n%s\r\n", renderToast(*ev.Completion))
			}
			app.draw(ev.State, engine.Settings())
		}
	}
}

func (app *focusApp) draw(st timer.State, settings timer.Settings) {
	fmt.Fprintf(app.out, "\r\033[K%s", renderState(st, settings))
}

// handleKey applies a key press to the engine and reports whether the host should quit.
func handleKey(engine *timer.Engine, key byte) (bool, error) {
	switch key {
	case ' ':
		engine.Toggle()
	case 'r':
		engine.Reset()
	case 'w':
		return false, engine.SwitchMode(timer.Work)
	case 's':
		return false, engine.SwitchMode(timer.ShortBreak)
	case 'l':
		return false, engine.SwitchMode(timer.LongBreak)
	case 'q', keyCtrlC:
		return true, nil
	}
	return false, nil
}

// readKeys streams the bytes of r. The channel is closed on EOF or read error.
func readKeys(r io.Reader) <-chan byte {
	keys := make(chan byte)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}
