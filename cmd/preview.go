package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectiz/internal/content"
	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Read one generated text and answer it on stdin (no database)",
	Long: `Fetch one reading passage and answer its questions interactively.

This is a stateless developer tool — no database, no profile, no events.
Useful for evaluating generated content and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("difficulty", string(quiz.DefaultDifficulty), "Difficulty: easy, medium or hard")
	previewCmd.Flags().Bool("static", false, "Use the built-in reading instead of an LLM")
}

func runPreview(cmd *cobra.Command, args []string) error {
	diffVal, _ := cmd.Flags().GetString("difficulty")
	static, _ := cmd.Flags().GetBool("static")

	difficulty, err := quiz.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var provider quiz.ContentProvider = content.NewStatic()
	if !static {
		provider = newContentProvider(ctx, nil)
	}

	machine := quiz.NewMachine(provider, nil, quiz.WithStartingDifficulty(difficulty))
	return previewSession(ctx, machine, difficulty, os.Stdin, os.Stdout)
}

// previewSession drives machine through one content set, reading answers
// from in and writing the transcript to out.
func previewSession(ctx context.Context, machine *quiz.Machine, difficulty quiz.Difficulty, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Generando un texto de nivel %s...\n\n", difficulty)

	sess, err := machine.RequestContent(ctx, difficulty)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	fmt.Fprintln(out, sess.Content.Passage)
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for sess.Phase != quiz.PhaseCompleted {
		q := sess.Question()
		fmt.Fprintf(out, "── Pregunta %d/%d ──\n", sess.Index+1, sess.QuestionCount())
		fmt.Fprintln(out, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLabel(i), opt)
		}

		option, ok := readOption(scanner, out, len(q.Options))
		if !ok {
			fmt.Fprintln(out, "\n(entrada cerrada)")
			return nil
		}

		sess, err = machine.SelectAnswer(ctx, option)
		if err != nil {
			return err
		}
		if sess.LastAnswerCorrect() {
			fmt.Fprintf(out, "\033[32m✓ %s\033[0m\n\n", sess.Feedback)
		} else {
			fmt.Fprintf(out, "\033[31m✗ %s\033[0m\n\n", sess.Feedback)
		}

		sess, err = machine.Advance(ctx)
		var perr *quiz.PersistenceError
		if err != nil && !errors.As(err, &perr) {
			return err
		}
	}

	last := sess.Last
	fmt.Fprintf(out, "── Resultado: %d de %d ──\n", last.Score, last.QuestionCount)
	fmt.Fprintf(out, "Próximo nivel: %s\n", last.NextDifficulty)
	return nil
}

// readOption prompts until the user enters a valid option letter or number.
func readOption(scanner *bufio.Scanner, out io.Writer, n int) (int, bool) {
	for {
		fmt.Fprint(out, "\nTu respuesta: ")
		if !scanner.Scan() {
			return 0, false
		}
		answer := strings.TrimSpace(scanner.Text())
		if i, ok := components.OptionIndex(answer, n); ok {
			return i, true
		}
		fmt.Fprintf(out, "Elige una opción entre A y %s.\n", components.OptionLabel(n-1))
	}
}
