package timer

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/session"
)

var (
	nowFunc = time.Now // mockable

	ErrRunning    = errors.New("cannot switch mode while the timer is running")
	ErrOpen       = errors.New("timer is already open")
	errNoRecorder = errors.New("no session recorder")
)

type (
	// Recorder persists the record of a completed focus phase.
	Recorder interface {
		Record(ctx context.Context, sess session.Session) error
	}

	RecorderFunc func(ctx context.Context, sess session.Session) error

	// Notifier announces finished phases. It is called synchronously from the tick that completed the phase.
	Notifier interface {
		PhaseComplete(c Completion)
	}

	NotifierFunc func(c Completion)
)

func (f RecorderFunc) Record(ctx context.Context, sess session.Session) error { return f(ctx, sess) }
func (f NotifierFunc) PhaseComplete(c Completion)                            { f(c) }

type EventType string

const (
	EventChange   EventType = "change"   // tick, toggle, reset, mode switch or settings update
	EventComplete EventType = "complete" // a phase finished
)

type Event struct {
	Type       EventType
	State      State
	Completion *Completion
	At         time.Time
}

type Option func(*Engine)

func WithRecorder(r Recorder) Option { return func(e *Engine) { e.recorder = r } }
func WithNotifier(n Notifier) Option { return func(e *Engine) { e.notifier = n } }
func WithLogger(l core.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithInterval sets the tick period of the loop started by Open (1s by default).
func WithInterval(d time.Duration) Option { return func(e *Engine) { e.interval = d } }

func WithRecordTimeout(d time.Duration) Option { return func(e *Engine) { e.recordTimeout = d } }

// WithOwner sets the user (and optional profile) completed sessions are recorded for.
func WithOwner(userID, profileID string) Option {
	return func(e *Engine) {
		e.userID = userID
		e.profileID = profileID
	}
}

// Engine is a countdown cycling through work, short break and long break phases.
// Ticks and user actions are serialized: each runs to completion before the next.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	state    State

	userID        string
	profileID     string
	recorder      Recorder
	notifier      Notifier
	logger        core.Logger
	interval      time.Duration
	recordTimeout time.Duration

	events   []chan Event
	stopCh   chan struct{}
	loopDone chan struct{}
	pending  sync.WaitGroup
}

// New returns a paused engine in the Work phase.
func New(settings Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		settings:      settings,
		interval:      time.Second,
		recordTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.interval <= 0 {
		e.interval = time.Second
	}
	e.state = State{Mode: Work, RemainingSeconds: settings.Seconds(Work)}
	return e, nil
}

// Open starts the tick loop. The loop is owned by the engine and released by Close.
func (e *Engine) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopCh != nil {
		return ErrOpen
	}
	e.stopCh = make(chan struct{})
	e.loopDone = make(chan struct{})
	go e.run(time.NewTicker(e.interval), e.stopCh, e.loopDone)
	return nil
}

// Close stops the tick loop, waits for in-flight session recordings and closes subscribers.
func (e *Engine) Close() error {
	e.mu.Lock()
	stopCh, loopDone := e.stopCh, e.loopDone
	e.stopCh, e.loopDone = nil, nil
	e.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-loopDone
	}
	e.pending.Wait()

	e.mu.Lock()
	events := e.events
	e.events = nil
	e.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
	return nil
}

func (e *Engine) run(ticker *time.Ticker, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Subscribe registers an observer channel. Slow observers miss events rather than block the engine.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Tick advances a running countdown by one second. Reaching zero completes the phase in the same tick.
func (e *Engine) Tick() {
	e.mu.Lock()
	if !e.state.Running || e.state.RemainingSeconds <= 0 {
		e.mu.Unlock()
		return
	}

	e.state.RemainingSeconds--
	var done *Completion
	if e.state.RemainingSeconds == 0 {
		c := e.completeLocked()
		done = &c
	}
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
	if done != nil {
		e.emitLocked(Event{Type: EventComplete, State: e.state, Completion: done, At: done.At})
	}
	notifier := e.notifier
	e.mu.Unlock()

	if done != nil && notifier != nil {
		notifier.PhaseComplete(*done)
	}
}

// Toggle starts or pauses the countdown and returns whether it is now running.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Running = !e.state.Running
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
	return e.state.Running
}

func (e *Engine) Start() { e.setRunning(true) }
func (e *Engine) Pause() { e.setRunning(false) }

func (e *Engine) setRunning(running bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Running == running {
		return
	}
	e.state.Running = running
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
}

// Reset pauses the countdown and refills the current phase from the settings.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Running = false
	e.state.RemainingSeconds = e.settings.Seconds(e.state.Mode)
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
}

// SwitchMode moves a paused engine to mode with a full countdown. It never counts a session.
func (e *Engine) SwitchMode(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Running {
		return ErrRunning
	}
	e.enterLocked(mode)
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
	return nil
}

// UpdateSettings replaces the settings. The current countdown is left as is until Reset or the next phase.
func (e *Engine) UpdateSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = settings
	e.emitLocked(Event{Type: EventChange, State: e.state, At: nowFunc()})
	return nil
}

func (e *Engine) completeLocked() Completion {
	c := Completion{From: e.state.Mode, At: nowFunc()}
	e.state.Running = false

	switch e.state.Mode {
	case Work:
		e.state.SessionsCompleted++
		e.recordLocked(e.state.SessionsCompleted, c.At)
		if e.state.SessionsCompleted%e.settings.SessionsUntilLongBreak == 0 {
			e.enterLocked(LongBreak)
		} else {
			e.enterLocked(ShortBreak)
		}
	default:
		e.enterLocked(Work)
	}

	c.To = e.state.Mode
	c.SessionsCompleted = e.state.SessionsCompleted
	return c
}

func (e *Engine) enterLocked(mode Mode) {
	e.state.Mode = mode
	e.state.RemainingSeconds = e.settings.Seconds(mode)
	e.state.Running = false
}

// recordLocked hands the completed session to the recorder without waiting for the outcome.
// Failures are logged only.
func (e *Engine) recordLocked(ordinal int, now time.Time) {
	recorder, logger := e.recorder, e.logger
	if recorder == nil {
		if logger != nil {
			logger.Debug(errNoRecorder.Error())
		}
		return
	}
	sess := session.NewFromTimer(e.userID, e.profileID, e.settings.WorkDuration, ordinal, now)
	timeout := e.recordTimeout

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := recorder.Record(ctx, sess); err != nil && logger != nil {
			logger.Error("recording completed session", errors.Wrapf(err, "session %d", ordinal))
		}
	}()
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}
