package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/router"
)

func activeService(t *testing.T, attempts ...quiz.Attempt) *profile.Service {
	t.Helper()
	st := profile.NewMemoryStore()
	svc := profile.NewService(st, st)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, a := range attempts {
		if err := svc.RecordAttempt(ctx, a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	return svc
}

func loaded(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	s.Update(cmd())
}

func TestRowsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	got := rows([]quiz.Attempt{
		{Timestamp: base, Score: 1, QuestionCount: 5, Difficulty: quiz.DifficultyEasy},
		{Timestamp: base.Add(time.Hour), Score: 4, QuestionCount: 5, Difficulty: quiz.DifficultyMedium},
	})
	if len(got) != 2 {
		t.Fatalf("rows = %d", len(got))
	}
	if got[0][1] != "4/5" || got[0][2] != "80%" || got[0][3] != "medium" {
		t.Errorf("first row = %v", got[0])
	}
	if got[1][1] != "1/5" {
		t.Errorf("second row = %v", got[1])
	}
}

func TestHistoryView(t *testing.T) {
	svc := activeService(t,
		quiz.Attempt{ID: "a1", Timestamp: time.Now(), Score: 3, QuestionCount: 5, Difficulty: quiz.DifficultyMedium},
		quiz.Attempt{ID: "a2", Timestamp: time.Now(), Score: 5, QuestionCount: 5, Difficulty: quiz.DifficultyHard},
	)
	s := New(svc)
	loaded(t, s)

	view := s.View(100, 30)
	for _, want := range []string{"Textos: 2", "8 de 10", "3/5", "5/5", "hard"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	s := New(activeService(t))
	loaded(t, s)
	if !strings.Contains(s.View(100, 30), "ningún texto") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryNoActiveProfile(t *testing.T) {
	st := profile.NewMemoryStore()
	s := New(profile.NewService(st, st))
	loaded(t, s)
	if s.errMsg == "" {
		t.Error("expected an error without an active profile")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(activeService(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
