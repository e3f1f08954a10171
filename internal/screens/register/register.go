package register

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/router"
	"github.com/abhisek/lectiz/internal/screen"
	"github.com/abhisek/lectiz/internal/ui/components"
	"github.com/abhisek/lectiz/internal/ui/layout"
	"github.com/abhisek/lectiz/internal/ui/theme"
)

const maxNameLength = 40

type registeredMsg struct {
	Profile *profile.UserProfile
	Err     error
}

// RegisterScreen asks for a display name and creates a profile.
type RegisterScreen struct {
	profiles   *profile.Service
	onRegister func(*profile.UserProfile) screen.Screen
	input      components.TextInput
	submitting bool
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates a RegisterScreen. onRegister builds the screen shown once the
// profile exists.
func New(profiles *profile.Service, onRegister func(*profile.UserProfile) screen.Screen) *RegisterScreen {
	return &RegisterScreen{
		profiles:   profiles,
		onRegister: onRegister,
		input:      components.NewTextInput("Tu nombre", maxNameLength),
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *RegisterScreen) Title() string {
	return "Registro"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Registrarse"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		s.submitting = false
		if msg.Err != nil && !errors.Is(msg.Err, profile.ErrNotRemembered) {
			if errors.Is(msg.Err, profile.ErrEmptyName) {
				s.input.SetError("Escribe tu nombre para continuar.")
			} else {
				s.input.SetError("No se pudo registrar: " + msg.Err.Error())
			}
			return s, nil
		}
		next := s.onRegister(msg.Profile)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if s.submitting {
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *RegisterScreen) submit() tea.Cmd {
	name := strings.TrimSpace(s.input.Value())
	if name == "" {
		s.input.SetError("Escribe tu nombre para continuar.")
		return nil
	}
	s.submitting = true
	profiles := s.profiles
	return func() tea.Msg {
		p, err := profiles.Register(context.Background(), name)
		return registeredMsg{Profile: p, Err: err}
	}
}

func (s *RegisterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Bienvenido a Lectiz")
	intro := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw - 8).
		Align(lipgloss.Center).
		Render("Regístrate para comenzar a mejorar tus habilidades de comprensión lectora.")

	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Nombre"),
		s.input.View(),
	)
	if s.submitting {
		form += "\n" + theme.Hint.Render("Registrando...")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		heading, "", intro, "", components.Card(form, cw))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
