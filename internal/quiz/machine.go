package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger receives diagnostic lines from the machine.
type Logger func(format string, args ...any)

// Machine drives a Session: it applies intents through Apply and performs
// the resulting effects against the injected provider and recorder.
//
// Content fetches run outside the lock so a Reset can land while a request
// is outstanding; the late result is then rejected by its generation.
type Machine struct {
	mu       sync.Mutex
	session  Session
	provider ContentProvider
	recorder AttemptRecorder
	now      func() time.Time
	newID    func() string
	logf     Logger
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock overrides the clock used to timestamp attempts.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides attempt identifier generation.
func WithIDGenerator(fn func() string) MachineOption {
	return func(m *Machine) { m.newID = fn }
}

// WithLogger overrides where diagnostics go. The default writes warnings to
// stderr.
func WithLogger(l Logger) MachineOption {
	return func(m *Machine) { m.logf = l }
}

// WithStartingDifficulty sets the level of the first request.
func WithStartingDifficulty(d Difficulty) MachineOption {
	return func(m *Machine) { m.session = NewSession(d) }
}

// NewMachine creates an idle Machine. recorder may be nil, in which case
// completed attempts are not persisted.
func NewMachine(provider ContentProvider, recorder AttemptRecorder, opts ...MachineOption) *Machine {
	m := &Machine{
		session:  NewSession(DefaultDifficulty),
		provider: provider,
		recorder: recorder,
		now:      time.Now,
		newID:    newAttemptID,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newAttemptID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Session returns a snapshot of the current session.
func (m *Machine) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Dispatch applies in and performs PersistAttempt effects before returning,
// so a completing Advance is acknowledged only after the attempt is saved.
// FetchContent effects are returned for the caller to run with Fetch.
//
// Invalid and stale intents are logged and returned as errors with the
// session unchanged.
func (m *Machine) Dispatch(ctx context.Context, in Intent) (Session, []Effect, error) {
	m.mu.Lock()
	next, effects, err := Apply(m.session, in)
	m.session = next
	m.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidIntent):
			m.logf("ignored %v", err)
		case errors.Is(err, ErrStaleContent):
			m.logf("discarded %v", err)
		}
		return next, nil, err
	}

	var pending []Effect
	for _, eff := range effects {
		switch eff := eff.(type) {
		case PersistAttempt:
			if perr := m.persist(ctx, eff.Attempt); perr != nil {
				err = perr
			}
		default:
			pending = append(pending, eff)
		}
	}
	return next, pending, err
}

func (m *Machine) persist(ctx context.Context, a Attempt) error {
	a.ID = m.newID()
	a.Timestamp = m.now().UTC()
	if m.recorder == nil {
		return nil
	}
	if err := m.recorder.RecordAttempt(ctx, a); err != nil {
		m.logf("failed to record attempt %s: %v", a.ID, err)
		return &PersistenceError{Attempt: a, Err: err}
	}
	return nil
}

// Fetch calls the content provider for f and returns the intent that
// delivers the outcome. It does not touch the session.
func (m *Machine) Fetch(ctx context.Context, f FetchContent) Intent {
	set, err := m.provider.FetchContent(ctx, f.Difficulty)
	if err != nil {
		return ContentFailed{Generation: f.Generation, Err: err}
	}
	return ContentLoaded{Generation: f.Generation, Content: set}
}

// RequestContent requests, fetches and applies a content set in one call.
func (m *Machine) RequestContent(ctx context.Context, d Difficulty) (Session, error) {
	s, effects, err := m.Dispatch(ctx, RequestContent{Difficulty: d})
	if err != nil {
		return s, err
	}
	for _, eff := range effects {
		if f, ok := eff.(FetchContent); ok {
			s, _, err = m.Dispatch(ctx, m.Fetch(ctx, f))
		}
	}
	return s, err
}

// SelectAnswer locks in option for the current question.
func (m *Machine) SelectAnswer(ctx context.Context, option int) (Session, error) {
	s, _, err := m.Dispatch(ctx, SelectAnswer{Option: option})
	return s, err
}

// Advance moves to the next question or completes the set.
func (m *Machine) Advance(ctx context.Context) (Session, error) {
	s, _, err := m.Dispatch(ctx, Advance{})
	return s, err
}

// Reset discards the current set and any outstanding request.
func (m *Machine) Reset(ctx context.Context) Session {
	s, _, _ := m.Dispatch(ctx, Reset{})
	return s
}
