package reading

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/ui/components"
	"github.com/abhisek/lectiz/internal/ui/theme"
)

func (s *ReadingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch s.session.Phase {
	case quiz.PhaseContentLoading:
		content = s.viewLoading()
	case quiz.PhaseAwaitingAnswer, quiz.PhaseAnswerRevealed:
		content = s.viewQuestion(cw)
	default:
		content = s.viewIdle(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *ReadingScreen) viewLoading() string {
	level := theme.DifficultyStyle(string(s.session.Difficulty)).Render(string(s.session.Difficulty))
	return s.spinner.View() + " " +
		theme.Body.Render("Generando un texto nuevo") + " " + level + theme.Body.Render("...")
}

func (s *ReadingScreen) viewIdle(cw int) string {
	if s.err == nil {
		return theme.Hint.Render("Pulsa Enter para cargar un texto.")
	}

	msg := "No se pudo cargar el texto."
	if !errors.Is(s.err, quiz.ErrContentUnavailable) {
		msg = "Algo salió mal."
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Incorrect.Render(msg),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-8).Render(s.err.Error()),
		"",
		theme.Hint.Render("Pulsa Enter para reintentar."),
	)
	return components.Card(body, cw)
}

func (s *ReadingScreen) viewQuestion(cw int) string {
	sess := s.session
	q := sess.Question()
	if q == nil {
		return ""
	}

	var sections []string

	passage := theme.Passage.Width(cw).Render(sess.Content.Passage)
	sections = append(sections, passage, "")

	total := sess.QuestionCount()
	progress := components.NewProgressBar(
		fmt.Sprintf("Pregunta %d de %d", sess.Index+1, total),
		float64(sess.Index+1)/float64(total), false, cw)
	sections = append(sections, progress.View(), "")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw).
		Render(q.Prompt)
	sections = append(sections, prompt, "")

	choices := components.Choices{
		Options: q.Options,
		Cursor:  s.cursor,
		Chosen:  sess.Selected,
		Correct: q.CorrectIndex,
	}
	sections = append(sections, strings.TrimRight(choices.View(), "\n"))

	if sess.Phase == quiz.PhaseAnswerRevealed {
		sections = append(sections, "", s.viewFeedback(cw))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *ReadingScreen) viewFeedback(cw int) string {
	style := theme.Incorrect
	if s.session.LastAnswerCorrect() {
		style = theme.Correct
	}
	feedback := style.Width(cw).Render(s.session.Feedback)

	next := "Pulsa Enter para continuar."
	if s.session.IsLastQuestion() {
		next = "Pulsa Enter para ver tus resultados."
	}
	return feedback + "\n" + theme.Hint.Render(next)
}
