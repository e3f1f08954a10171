package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/router"
	"github.com/abhisek/lectiz/internal/screen"
	"github.com/abhisek/lectiz/internal/ui/components"
	"github.com/abhisek/lectiz/internal/ui/layout"
	"github.com/abhisek/lectiz/internal/ui/theme"
)

// Screens builds the screens reachable from home. Factories avoid an import
// cycle between home and the screens that navigate back to it.
type Screens struct {
	Reading  func(*quiz.Machine) screen.Screen
	History  func() screen.Screen
	Register func() screen.Screen
}

type loggedOutMsg struct {
	Err error
}

// HomeScreen is the main menu for a logged-in learner. It owns the quiz
// machine so a half-finished reading survives a trip back to the menu.
type HomeScreen struct {
	profiles *profile.Service
	machine  *quiz.Machine
	screens  Screens
	menu     components.Menu
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(profiles *profile.Service, machine *quiz.Machine, screens Screens) *HomeScreen {
	h := &HomeScreen{
		profiles: profiles,
		machine:  machine,
		screens:  screens,
	}

	items := []components.MenuItem{
		{Label: "Leer un texto", Key: "l", Action: h.openReading},
		{Label: "Historial", Key: "h", Action: h.openHistory},
		{Label: "Cerrar sesión", Key: "s", Action: h.logout},
		{Label: "Salir", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) openReading() tea.Cmd {
	next := h.screens.Reading(h.machine)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) openHistory() tea.Cmd {
	next := h.screens.History()
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// logout discards the session and clears the active profile.
func (h *HomeScreen) logout() tea.Cmd {
	h.machine.Reset(context.Background())
	profiles := h.profiles
	return func() tea.Msg {
		return loggedOutMsg{Err: profiles.Logout(context.Background())}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) Difficulty() string {
	return string(h.machine.Session().Difficulty)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loggedOutMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		next := h.screens.Register()
		return h, func() tea.Msg { return router.ResetStackMsg{Screen: next} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := h.profiles.Active()

	var sections []string

	greeting := "¡Hola!"
	if p != nil {
		greeting = fmt.Sprintf("¡Hola, %s!", p.DisplayName)
	}
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(greeting),
		theme.Subtitle.Render("¿Listo para tu próxima lectura?"),
	)

	sections = append(sections, components.StatBox(h.statsLine(p), cw))

	sess := h.machine.Session()
	if sess.Phase == quiz.PhaseAwaitingAnswer || sess.Phase == quiz.PhaseAnswerRevealed {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf(
			"Tienes un texto a medias: pregunta %d de %d.", sess.Index+1, sess.QuestionCount())))
	}

	sections = append(sections, h.menu.ButtonsView(cw/2+8))

	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(h.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

func (h *HomeScreen) statsLine(p *profile.UserProfile) string {
	level := string(h.machine.Session().Difficulty)
	parts := []string{
		"Nivel: " + theme.DifficultyStyle(level).Render(level),
	}
	if last, ok := p.LastAttempt(); ok {
		parts = append(parts, fmt.Sprintf("Último: %d de %d", last.Score, last.QuestionCount))
	}
	if p != nil {
		parts = append(parts, fmt.Sprintf("Textos leídos: %d", len(p.History)))
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(parts, "   "))
}
