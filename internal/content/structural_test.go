package content

import (
	"strings"
	"testing"

	"github.com/abhisek/lectiz/internal/quiz"
)

func validSet() *quiz.ContentSet {
	return &quiz.ContentSet{
		Passage: "Ana camina al parque todos los días.",
		Questions: []quiz.Question{
			{
				Prompt:       "¿Adónde camina Ana?",
				Options:      []string{"Al parque", "A la escuela", "Al mercado", "A casa"},
				CorrectIndex: 0,
				Explanation:  "El texto dice que camina al parque.",
			},
		},
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*quiz.ContentSet)
		wantErr string
	}{
		{"valid", func(*quiz.ContentSet) {}, ""},
		{"empty passage", func(s *quiz.ContentSet) { s.Passage = "  " }, "passage is empty"},
		{"long passage", func(s *quiz.ContentSet) { s.Passage = strings.Repeat("a", maxPassageChars+1) }, "passage exceeds"},
		{"no questions", func(s *quiz.ContentSet) { s.Questions = nil }, "no questions"},
		{"three options", func(s *quiz.ContentSet) { s.Questions[0].Options = s.Questions[0].Options[:3] }, "question 1"},
		{"index out of range", func(s *quiz.ContentSet) { s.Questions[0].CorrectIndex = 4 }, "question 1"},
		{"missing explanation", func(s *quiz.ContentSet) { s.Questions[0].Explanation = "" }, "no explanation"},
		{"long prompt", func(s *quiz.ContentSet) { s.Questions[0].Prompt = strings.Repeat("p", maxPromptChars+1) }, "prompt exceeds"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := validSet()
			tt.mutate(set)
			verr := v.Validate(set, quiz.DifficultyMedium)
			if tt.wantErr == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(verr.Message, tt.wantErr) {
				t.Errorf("expected %q in message, got %q", tt.wantErr, verr.Message)
			}
			if !verr.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}

func TestDistinctOptionsValidator(t *testing.T) {
	v := &DistinctOptionsValidator{}

	if verr := v.Validate(validSet(), quiz.DifficultyEasy); verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}

	dup := validSet()
	dup.Questions[0].Options[2] = " al PARQUE "
	if verr := v.Validate(dup, quiz.DifficultyEasy); verr == nil || !strings.Contains(verr.Message, "repeats") {
		t.Errorf("expected repeat error, got %v", verr)
	}

	empty := validSet()
	empty.Questions[0].Options[3] = ""
	if verr := v.Validate(empty, quiz.DifficultyEasy); verr == nil || !strings.Contains(verr.Message, "empty option") {
		t.Errorf("expected empty option error, got %v", verr)
	}
}

func TestPassageOpening(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hola mundo. Segunda frase.", "Hola mundo."},
		{"  Sin punto final  ", "Sin punto final"},
		{strings.Repeat("x", 200), strings.Repeat("x", 117) + "..."},
	}
	for _, tt := range tests {
		if got := passageOpening(tt.in); got != tt.want {
			t.Errorf("passageOpening(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatic_ReturnsCopy(t *testing.T) {
	s := NewStatic()
	a, err := s.FetchContent(t.Context(), quiz.DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Questions[0].Prompt = "changed"

	b, _ := s.FetchContent(t.Context(), quiz.DifficultyHard)
	if b.Questions[0].Prompt == "changed" {
		t.Error("static provider leaked shared state")
	}
	if len(b.Questions) != 5 {
		t.Errorf("expected 5 built-in questions, got %d", len(b.Questions))
	}
	if err := b.Validate(); err != nil {
		t.Errorf("built-in set invalid: %v", err)
	}
}
