package reading

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/router"
	"github.com/abhisek/lectiz/internal/screen"
	"github.com/abhisek/lectiz/internal/ui/components"
	"github.com/abhisek/lectiz/internal/ui/layout"
	"github.com/abhisek/lectiz/internal/ui/theme"
)

// CompleteFunc builds the screen shown when a set is finished. err is a
// *quiz.PersistenceError when the attempt could not be saved.
type CompleteFunc func(s quiz.Session, err error) screen.Screen

// ReadingScreen shows a passage and walks through its questions, driving a
// quiz.Machine. Content fetches run as commands and come back as contentMsg.
type ReadingScreen struct {
	machine    *quiz.Machine
	onComplete CompleteFunc
	session    quiz.Session
	spinner    spinner.Model
	cursor     int
	err        error
}

var _ screen.Screen = (*ReadingScreen)(nil)
var _ screen.KeyHintProvider = (*ReadingScreen)(nil)
var _ screen.StatusProvider = (*ReadingScreen)(nil)

// New creates a ReadingScreen over machine. The machine outlives the screen,
// so a set left half-answered is resumed the next time one is created.
func New(machine *quiz.Machine, onComplete CompleteFunc) *ReadingScreen {
	return &ReadingScreen{
		machine:    machine,
		onComplete: onComplete,
		session:    machine.Session(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Hint.Foreground(theme.Primary)),
		),
	}
}

func (s *ReadingScreen) Init() tea.Cmd {
	s.session = s.machine.Session()
	switch s.session.Phase {
	case quiz.PhaseAwaitingAnswer, quiz.PhaseAnswerRevealed:
		return nil
	case quiz.PhaseContentLoading:
		// The result of the earlier request was delivered to a screen that
		// is gone; start over.
		s.session = s.machine.Reset(context.Background())
	}
	return s.request()
}

func (s *ReadingScreen) Title() string {
	return "Lectura"
}

// Difficulty reports the level of the current session for the header.
func (s *ReadingScreen) Difficulty() string {
	return string(s.session.Difficulty)
}

func (s *ReadingScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case quiz.PhaseContentLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
		}
	case quiz.PhaseAwaitingAnswer:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Responder"},
			{Key: "↑↓", Description: "Mover"},
			{Key: "Enter", Description: "Elegir"},
			{Key: "N", Description: "Nuevo texto"},
			{Key: "R", Description: "Reiniciar"},
			{Key: "Esc", Description: "Volver"},
		}
	case quiz.PhaseAnswerRevealed:
		label := "Siguiente"
		if s.session.IsLastQuestion() {
			label = "Ver resultados"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "N", Description: "Nuevo texto"},
			{Key: "Esc", Description: "Volver"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reintentar"},
			{Key: "Esc", Description: "Volver"},
		}
	}
}

// request asks for a new set at the session's level and starts the fetch.
func (s *ReadingScreen) request() tea.Cmd {
	s.err = nil
	s.cursor = 0
	sess, effects, err := s.machine.Dispatch(context.Background(), quiz.RequestContent{Difficulty: s.session.Difficulty})
	s.session = sess
	if err != nil {
		s.err = err
		return nil
	}

	cmds := []tea.Cmd{s.spinner.Tick}
	for _, eff := range effects {
		if f, ok := eff.(quiz.FetchContent); ok {
			cmds = append(cmds, s.fetch(f))
		}
	}
	return tea.Batch(cmds...)
}

func (s *ReadingScreen) fetch(f quiz.FetchContent) tea.Cmd {
	machine := s.machine
	return func() tea.Msg {
		return contentMsg{Intent: machine.Fetch(context.Background(), f)}
	}
}

// restart discards the current set and requests a fresh one.
func (s *ReadingScreen) restart() tea.Cmd {
	s.session = s.machine.Reset(context.Background())
	return s.request()
}

// abandon resets the session to idle and returns to the previous screen.
func (s *ReadingScreen) abandon() tea.Cmd {
	s.session = s.machine.Reset(context.Background())
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ReadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentMsg:
		sess, _, err := s.machine.Dispatch(context.Background(), msg.Intent)
		if errors.Is(err, quiz.ErrStaleContent) {
			return s, nil
		}
		s.session = sess
		s.cursor = 0
		s.err = err
		return s, nil

	case spinner.TickMsg:
		if s.session.Phase != quiz.PhaseContentLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ReadingScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.session.Phase {
	case quiz.PhaseContentLoading:
		return s, nil

	case quiz.PhaseIdle, quiz.PhaseCompleted:
		if key == "enter" || key == "r" {
			return s, s.request()
		}
		return s, nil

	case quiz.PhaseAwaitingAnswer:
		n := len(s.session.Question().Options)
		if i, ok := components.OptionIndex(key, n); ok {
			return s, s.selectOption(i)
		}
		switch key {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < n-1 {
				s.cursor++
			}
		case "enter", "space":
			return s, s.selectOption(s.cursor)
		case "n":
			return s, s.restart()
		case "r":
			return s, s.abandon()
		}
		return s, nil

	case quiz.PhaseAnswerRevealed:
		switch key {
		case "enter", "space", "right":
			return s, s.advance()
		case "n":
			return s, s.restart()
		case "r":
			return s, s.abandon()
		}
	}
	return s, nil
}

func (s *ReadingScreen) selectOption(i int) tea.Cmd {
	sess, err := s.machine.SelectAnswer(context.Background(), i)
	if err != nil {
		return nil
	}
	s.session = sess
	s.cursor = i
	return nil
}

func (s *ReadingScreen) advance() tea.Cmd {
	sess, err := s.machine.Advance(context.Background())
	var perr *quiz.PersistenceError
	if err != nil && !errors.As(err, &perr) {
		return nil
	}
	s.session = sess
	s.cursor = 0
	if sess.Phase != quiz.PhaseCompleted {
		return nil
	}

	next := s.onComplete(sess, err)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
