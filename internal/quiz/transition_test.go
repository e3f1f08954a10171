package quiz

import (
	"errors"
	"strings"
	"testing"
)

func testSet(n int) *ContentSet {
	set := &ContentSet{Passage: "Texto de prueba."}
	for i := 0; i < n; i++ {
		set.Questions = append(set.Questions, Question{
			Prompt:       "¿Pregunta?",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 1,
			Explanation:  "Porque b.",
		})
	}
	return set
}

// loaded returns a session awaiting the first answer of set.
func loaded(t *testing.T, set *ContentSet) Session {
	t.Helper()
	s, effects, err := Apply(NewSession(DifficultyMedium), RequestContent{Difficulty: DifficultyMedium})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one fetch effect, got %d", len(effects))
	}
	s, _, err = Apply(s, ContentLoaded{Generation: s.Generation, Content: set})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestApply_RequestContent(t *testing.T) {
	s, effects, err := Apply(NewSession(DifficultyEasy), RequestContent{Difficulty: DifficultyHard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseContentLoading {
		t.Errorf("expected content-loading, got %s", s.Phase)
	}
	if s.Difficulty != DifficultyHard {
		t.Errorf("expected hard, got %s", s.Difficulty)
	}
	fetch, ok := effects[0].(FetchContent)
	if !ok {
		t.Fatalf("expected FetchContent effect, got %T", effects[0])
	}
	if fetch.Generation != s.Generation || fetch.Difficulty != DifficultyHard {
		t.Errorf("unexpected fetch effect: %+v", fetch)
	}
}

func TestApply_RequestContentRejected(t *testing.T) {
	s := loaded(t, testSet(2))
	next, effects, err := Apply(s, RequestContent{Difficulty: DifficultyEasy})
	if !errors.Is(err, ErrInvalidIntent) {
		t.Fatalf("expected ErrInvalidIntent, got %v", err)
	}
	if effects != nil || next.Phase != PhaseAwaitingAnswer {
		t.Error("rejected request must leave the session untouched")
	}

	_, _, err = Apply(NewSession(DifficultyEasy), RequestContent{Difficulty: "extreme"})
	if !errors.Is(err, ErrInvalidIntent) {
		t.Errorf("expected ErrInvalidIntent for unknown difficulty, got %v", err)
	}
}

func TestApply_LoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContentSet) *ContentSet
	}{
		{"nil set", func(*ContentSet) *ContentSet { return nil }},
		{"no questions", func(c *ContentSet) *ContentSet { c.Questions = nil; return c }},
		{"three options", func(c *ContentSet) *ContentSet { c.Questions[0].Options = c.Questions[0].Options[:3]; return c }},
		{"index 4", func(c *ContentSet) *ContentSet { c.Questions[2].CorrectIndex = 4; return c }},
		{"negative index", func(c *ContentSet) *ContentSet { c.Questions[0].CorrectIndex = -1; return c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := Apply(NewSession(DifficultyMedium), RequestContent{Difficulty: DifficultyMedium})
			next, _, err := Apply(s, ContentLoaded{Generation: s.Generation, Content: tt.mutate(testSet(5))})
			if !errors.Is(err, ErrContentUnavailable) {
				t.Fatalf("expected ErrContentUnavailable, got %v", err)
			}
			if !errors.Is(err, ErrMalformedContent) {
				t.Errorf("expected ErrMalformedContent in chain, got %v", err)
			}
			if next.Phase != PhaseIdle || next.Content != nil {
				t.Errorf("expected idle with no content, got %s", next.Phase)
			}
		})
	}
}

func TestApply_ContentFailed(t *testing.T) {
	s, _, _ := Apply(NewSession(DifficultyHard), RequestContent{Difficulty: DifficultyHard})
	cause := errors.New("connection refused")
	next, _, err := Apply(s, ContentFailed{Generation: s.Generation, Err: cause})

	var cu *ContentUnavailableError
	if !errors.As(err, &cu) || !errors.Is(err, cause) {
		t.Fatalf("expected ContentUnavailableError wrapping cause, got %v", err)
	}
	if next.Phase != PhaseIdle || next.Difficulty != DifficultyHard {
		t.Errorf("expected idle at hard, got %s at %s", next.Phase, next.Difficulty)
	}
}

func TestApply_StaleResultDiscarded(t *testing.T) {
	s, _, _ := Apply(NewSession(DifficultyMedium), RequestContent{Difficulty: DifficultyMedium})
	stale := s.Generation
	s = applyReset(s)

	next, _, err := Apply(s, ContentLoaded{Generation: stale, Content: testSet(5)})
	if !errors.Is(err, ErrStaleContent) {
		t.Fatalf("expected ErrStaleContent, got %v", err)
	}
	if next.Phase != PhaseIdle || next.Content != nil {
		t.Error("stale content must not be applied")
	}

	// Also discarded when a newer request is outstanding.
	s, _, _ = Apply(s, RequestContent{Difficulty: DifficultyMedium})
	if _, _, err := Apply(s, ContentLoaded{Generation: stale, Content: testSet(5)}); !errors.Is(err, ErrStaleContent) {
		t.Errorf("expected ErrStaleContent against newer request, got %v", err)
	}
}

func TestApply_LoadingRejectsAnswerIntents(t *testing.T) {
	s, _, _ := Apply(NewSession(DifficultyMedium), RequestContent{Difficulty: DifficultyMedium})
	for _, in := range []Intent{SelectAnswer{Option: 0}, Advance{}, RequestContent{Difficulty: DifficultyEasy}} {
		if _, _, err := Apply(s, in); !errors.Is(err, ErrInvalidIntent) {
			t.Errorf("%T while loading: expected ErrInvalidIntent, got %v", in, err)
		}
	}
}

func TestApply_SelectAnswer(t *testing.T) {
	s := loaded(t, testSet(2))

	correct, _, err := Apply(s, SelectAnswer{Option: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if correct.Score != 1 || correct.Feedback != FeedbackCorrect {
		t.Errorf("expected score 1 with affirmation, got %d %q", correct.Score, correct.Feedback)
	}
	if correct.Selected == nil || *correct.Selected != 1 {
		t.Error("expected selection recorded")
	}
	if correct.Phase != PhaseAnswerRevealed {
		t.Errorf("expected answer-revealed, got %s", correct.Phase)
	}

	wrong, _, _ := Apply(s, SelectAnswer{Option: 3})
	if wrong.Score != 0 {
		t.Errorf("expected score 0, got %d", wrong.Score)
	}
	if !strings.HasPrefix(wrong.Feedback, FeedbackIncorrect) || !strings.Contains(wrong.Feedback, "Porque b.") {
		t.Errorf("expected explanation in feedback, got %q", wrong.Feedback)
	}
	if s.Selected != nil {
		t.Error("Apply mutated its input session")
	}
}

func TestApply_SelectOnlyOnce(t *testing.T) {
	s := loaded(t, testSet(2))
	s, _, _ = Apply(s, SelectAnswer{Option: 1})

	for _, opt := range []int{0, 1, 2} {
		next, _, err := Apply(s, SelectAnswer{Option: opt})
		if !errors.Is(err, ErrInvalidIntent) {
			t.Fatalf("second select: expected ErrInvalidIntent, got %v", err)
		}
		if next.Score != 1 || *next.Selected != 1 {
			t.Errorf("second select changed state: score %d selected %d", next.Score, *next.Selected)
		}
	}
}

func TestApply_SelectOutOfRange(t *testing.T) {
	s := loaded(t, testSet(1))
	for _, opt := range []int{-1, 4} {
		if _, _, err := Apply(s, SelectAnswer{Option: opt}); !errors.Is(err, ErrInvalidIntent) {
			t.Errorf("option %d: expected ErrInvalidIntent, got %v", opt, err)
		}
	}
}

func TestApply_AdvanceMidSet(t *testing.T) {
	s := loaded(t, testSet(3))
	if _, _, err := Apply(s, Advance{}); !errors.Is(err, ErrInvalidIntent) {
		t.Fatalf("advance before answering: expected ErrInvalidIntent, got %v", err)
	}

	s, _, _ = Apply(s, SelectAnswer{Option: 1})
	next, effects, err := Apply(s, Advance{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(effects) != 0 {
		t.Errorf("mid-set advance should not emit effects, got %d", len(effects))
	}
	if next.Index != 1 || next.Selected != nil || next.Feedback != "" {
		t.Errorf("expected clean question 2, got index %d", next.Index)
	}
	if next.Phase != PhaseAwaitingAnswer || next.Score != 1 {
		t.Errorf("unexpected state after advance: %s score %d", next.Phase, next.Score)
	}
}

func TestApply_AdvanceCompletes(t *testing.T) {
	s := loaded(t, testSet(3))
	for i := 0; i < 3; i++ {
		s, _, _ = Apply(s, SelectAnswer{Option: 1})
		if i < 2 {
			s, _, _ = Apply(s, Advance{})
		}
	}

	done, effects, err := Apply(s, Advance{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.Phase != PhaseCompleted {
		t.Fatalf("expected completed, got %s", done.Phase)
	}
	if done.Score != 0 || done.Index != 0 || done.Selected != nil || done.Content != nil {
		t.Error("session-local fields should be reset on completion")
	}
	if done.Difficulty != DifficultyHard {
		t.Errorf("expected hard after 3/3, got %s", done.Difficulty)
	}
	if done.Last == nil || done.Last.Score != 3 || done.Last.QuestionCount != 3 {
		t.Fatalf("unexpected completion summary: %+v", done.Last)
	}
	if done.Last.PlayedAt != DifficultyMedium {
		t.Errorf("expected played-at medium, got %s", done.Last.PlayedAt)
	}

	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	persist, ok := effects[0].(PersistAttempt)
	if !ok {
		t.Fatalf("expected PersistAttempt, got %T", effects[0])
	}
	if persist.Attempt.Score != 3 || persist.Attempt.Difficulty != DifficultyMedium {
		t.Errorf("unexpected attempt: %+v", persist.Attempt)
	}

	if _, _, err := Apply(done, Advance{}); !errors.Is(err, ErrInvalidIntent) {
		t.Errorf("advance in completed: expected ErrInvalidIntent, got %v", err)
	}
}

func TestApply_ResetFromAnyPhase(t *testing.T) {
	loading, _, _ := Apply(NewSession(DifficultyEasy), RequestContent{Difficulty: DifficultyEasy})
	awaiting := loaded(t, testSet(2))
	revealed, _, _ := Apply(awaiting, SelectAnswer{Option: 0})

	for _, s := range []Session{NewSession(DifficultyEasy), loading, awaiting, revealed} {
		next, effects, err := Apply(s, Reset{})
		if err != nil {
			t.Fatalf("reset from %s: %v", s.Phase, err)
		}
		if effects != nil {
			t.Errorf("reset from %s emitted effects", s.Phase)
		}
		if next.Phase != PhaseIdle || next.Content != nil || next.Score != 0 || next.Selected != nil {
			t.Errorf("reset from %s left state behind", s.Phase)
		}
		if next.Difficulty != s.Difficulty {
			t.Errorf("reset from %s changed difficulty", s.Phase)
		}
		if next.Generation != s.Generation+1 {
			t.Errorf("reset from %s did not bump generation", s.Phase)
		}
	}
}
