package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/lectiz/internal/quiz"
)

const systemPrompt = `You write reading-comprehension exercises for language learners.

Rules:
- Write one short, self-contained passage followed by multiple-choice questions about it.
- Every question has exactly 4 options and exactly one correct option.
- correct_index is the zero-based position of the correct option.
- Distractors must be plausible but clearly contradicted or unsupported by the passage.
- Questions must be answerable from the passage alone. Mix main-idea, detail, inference and tone questions.
- The explanation cites or paraphrases the part of the passage that supports the answer.
- Write the passage, questions, options and explanations in the requested language.
- Do not reuse any topic from the "recent passages" list.`

var difficultyGuidance = map[quiz.Difficulty]string{
	quiz.DifficultyEasy:   "Short passage (60-90 words), common vocabulary, simple sentences. Questions ask about facts stated directly.",
	quiz.DifficultyMedium: "Medium passage (90-140 words), everyday vocabulary with a few less common words. Mix literal and simple inference questions.",
	quiz.DifficultyHard:   "Longer passage (140-200 words), richer vocabulary and complex sentences. Include inference, tone and implied-meaning questions.",
}

// buildUserMessage constructs the user message for one content request.
func buildUserMessage(d quiz.Difficulty, recent []string, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n", cfg.Language)
	fmt.Fprintf(&b, "Difficulty: %s\n", d)
	fmt.Fprintf(&b, "Guidance: %s\n", difficultyGuidance[d])
	fmt.Fprintf(&b, "Number of questions: %d\n", cfg.QuestionCount)

	b.WriteString("\nRecent passages (avoid these topics):\n")
	b.WriteString(buildDedup(recent, cfg.MaxPriorPassages))

	return b.String()
}

// buildDedup formats recent passage openings for the prompt, keeping at most
// max of the newest. Returns "None" when there are none.
func buildDedup(recent []string, max int) string {
	if len(recent) == 0 {
		return "None"
	}
	if max > 0 && len(recent) > max {
		recent = recent[len(recent)-max:]
	}

	var b strings.Builder
	for i, p := range recent {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// passageOpening returns the first sentence of a passage, capped at 120
// characters, for use in the dedup list.
func passageOpening(passage string) string {
	s := strings.TrimSpace(passage)
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		s = s[:i+1]
	}
	r := []rune(s)
	if len(r) > 120 {
		s = string(r[:117]) + "..."
	}
	return s
}

// rejectionMessage asks the model to fix a set that failed validation.
func rejectionMessage(verr *ValidationError) string {
	return fmt.Sprintf("That set was rejected: %s. Produce a corrected set that follows every rule.", verr.Message)
}
