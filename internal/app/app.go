package app

import (
	"fmt"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/router"
	"github.com/abhisek/lectiz/internal/screen"
	"github.com/abhisek/lectiz/internal/screens/history"
	"github.com/abhisek/lectiz/internal/screens/home"
	"github.com/abhisek/lectiz/internal/screens/reading"
	"github.com/abhisek/lectiz/internal/screens/register"
	"github.com/abhisek/lectiz/internal/screens/summary"
	"github.com/abhisek/lectiz/internal/screens/welcome"
	"github.com/abhisek/lectiz/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	// Profiles owns registration and the active profile. It also records
	// completed attempts.
	Profiles *profile.Service

	// Provider supplies reading passages and questions.
	Provider quiz.ContentProvider

	// Logger receives quiz diagnostics. Defaults to log.Printf.
	Logger quiz.Logger

	// SkipWelcome starts directly on home or registration.
	SkipWelcome bool
}

// screens builds every screen from Options so navigation factories share
// one set of dependencies.
type screens struct {
	opts Options
}

func (b *screens) entry() screen.Screen {
	if p := b.opts.Profiles.Active(); p != nil {
		return b.home(p)
	}
	return b.register()
}

func (b *screens) home(p *profile.UserProfile) screen.Screen {
	m := quiz.NewMachine(b.opts.Provider, b.opts.Profiles,
		quiz.WithStartingDifficulty(p.StartingDifficulty()),
		quiz.WithLogger(b.opts.Logger),
	)
	return home.New(b.opts.Profiles, m, home.Screens{
		Reading:  b.reading,
		History:  b.history,
		Register: b.register,
	})
}

func (b *screens) reading(m *quiz.Machine) screen.Screen {
	return reading.New(m, func(s quiz.Session, err error) screen.Screen {
		var result quiz.Completion
		if s.Last != nil {
			result = *s.Last
		}
		return summary.New(result, err, func() screen.Screen { return b.reading(m) })
	})
}

func (b *screens) history() screen.Screen {
	return history.New(b.opts.Profiles)
}

func (b *screens) register() screen.Screen {
	return register.New(b.opts.Profiles, b.home)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	profiles *profile.Service
	width    int
	height   int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.Printf
	}
	b := &screens{opts: opts}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = b.entry()
	} else {
		initial = welcome.New(b.entry)
	}
	return AppModel{
		router:   router.New(initial),
		profiles: opts.Profiles,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()

	// The welcome splash owns the whole screen.
	if _, ok := active.(*welcome.WelcomeScreen); ok {
		return m.router.View(m.width, m.height)
	}

	var user, difficulty string
	if p := m.profiles.Active(); p != nil {
		user = p.DisplayName
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		difficulty = sp.Difficulty()
	}
	header := layout.RenderHeader(active.Title(), user, difficulty, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
