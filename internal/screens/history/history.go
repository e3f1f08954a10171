package history

import (
	"fmt"

	"charm.land/bubbles/v2/table"
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

const dateLayout = "02/01/2006 15:04"

type historyLoadedMsg struct {
	Attempts []quiz.Attempt
	Err      error
}

// HistoryScreen lists the active profile's attempts, newest first.
type HistoryScreen struct {
	profiles *profile.Service
	attempts []quiz.Attempt
	table    table.Model
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(profiles *profile.Service) *HistoryScreen {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Primary)
	styles.Selected = styles.Selected.
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Bold(true)
	t.SetStyles(styles)

	return &HistoryScreen{profiles: profiles, table: t}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Fecha", Width: 18},
		{Title: "Puntaje", Width: 9},
		{Title: "%", Width: 6},
		{Title: "Dificultad", Width: 12},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	profiles := s.profiles
	return func() tea.Msg {
		p := profiles.Active()
		if p == nil {
			return historyLoadedMsg{Err: profile.ErrNoActiveProfile}
		}
		return historyLoadedMsg{Attempts: p.History}
	}
}

func (s *HistoryScreen) Title() string {
	return "Historial"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Mover"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempts = msg.Attempts
		s.table.SetRows(rows(msg.Attempts))
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return s, cmd
	}
	return s, nil
}

// rows converts attempts, stored oldest first, into table rows newest first.
func rows(attempts []quiz.Attempt) []table.Row {
	out := make([]table.Row, 0, len(attempts))
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		out = append(out, table.Row{
			a.Timestamp.Local().Format(dateLayout),
			fmt.Sprintf("%d/%d", a.Score, a.QuestionCount),
			fmt.Sprintf("%.0f%%", a.Accuracy()*100),
			string(a.Difficulty),
		})
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("No se pudo cargar el historial: "+s.errMsg))
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Cargando historial..."))
	}
	if len(s.attempts) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Aún no has completado ningún texto."))
	}

	cw := components.ContentWidth(width)
	s.table.SetWidth(cw)
	if h := height - 8; h > 3 {
		s.table.SetHeight(h)
	}

	var correct, total int
	for _, a := range s.attempts {
		correct += a.Score
		total += a.QuestionCount
	}
	var overall float64
	if total > 0 {
		overall = float64(correct) / float64(total)
	}
	stats := fmt.Sprintf("Textos: %d   Respuestas correctas: %d de %d", len(s.attempts), correct, total)

	content := lipgloss.JoinVertical(lipgloss.Center,
		components.StatBox(lipgloss.NewStyle().Foreground(theme.Text).Render(stats), cw),
		"",
		components.NewProgressBar("Acierto global", overall, true, cw-4).View(),
		"",
		s.table.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
