package summary

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/router"
	"github.com/abhisek/lectiz/internal/screen"
	"github.com/abhisek/lectiz/internal/ui/components"
	"github.com/abhisek/lectiz/internal/ui/layout"
	"github.com/abhisek/lectiz/internal/ui/theme"
)

// SummaryScreen shows the score of a finished set and the level the next
// one will be played at.
type SummaryScreen struct {
	result quiz.Completion
	warn   error
	again  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. warn is shown when the attempt could not be
// saved. again builds the screen for another reading; it may be nil.
func New(result quiz.Completion, warn error, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, warn: warn, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resultados"
}

func (s *SummaryScreen) Difficulty() string {
	return string(s.result.NextDifficulty)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Inicio"},
	}
	if s.again != nil {
		hints = append([]layout.KeyHint{{Key: "N", Description: "Otro texto"}}, hints...)
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "n":
			if s.again == nil {
				return s, nil
			}
			next := s.again()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// Headline returns the score line, e.g. "3 de 5".
func (s *SummaryScreen) Headline() string {
	return fmt.Sprintf("%d de %d", s.result.Score, s.result.QuestionCount)
}

func (s *SummaryScreen) levelMessage() string {
	played, next := s.result.PlayedAt, s.result.NextDifficulty
	switch {
	case next == played:
		return "Seguirás en el nivel " + string(next) + "."
	case levelRank(next) > levelRank(played):
		return "¡Muy bien! Subes al nivel " + string(next) + "."
	default:
		return "El próximo texto será más sencillo: nivel " + string(next) + "."
	}
}

func levelRank(d quiz.Difficulty) int {
	for i, l := range quiz.AllDifficulties() {
		if l == d {
			return i
		}
	}
	return -1
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	res := s.result

	var sections []string
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("¡Texto completado!"),
		"",
	)

	score := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Respuestas correctas: " + s.Headline())
	sections = append(sections, components.StatBox(score, cw), "")

	var accuracy float64
	if res.QuestionCount > 0 {
		accuracy = float64(res.Score) / float64(res.QuestionCount)
	}
	sections = append(sections,
		components.NewProgressBar("Acierto", accuracy, true, cw-4).View(),
		"",
		theme.DifficultyStyle(string(res.NextDifficulty)).Render(s.levelMessage()),
	)

	if s.warn != nil {
		msg := "No se pudo guardar este intento."
		var perr *quiz.PersistenceError
		if errors.As(s.warn, &perr) && perr.Err != nil {
			msg += " " + perr.Err.Error()
		}
		sections = append(sections, "", theme.Warn.Width(cw).Render("⚠ "+msg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
