package quiz

import (
	"errors"
	"testing"
)

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		current Difficulty
		correct int
		total   int
		want    Difficulty
	}{
		{"all correct from medium", DifficultyMedium, 5, 5, DifficultyHard},
		{"all correct from easy", DifficultyEasy, 5, 5, DifficultyHard},
		{"all correct stays hard", DifficultyHard, 5, 5, DifficultyHard},
		{"none correct from hard", DifficultyHard, 0, 5, DifficultyEasy},
		{"one correct from medium", DifficultyMedium, 1, 5, DifficultyEasy},
		{"none correct stays easy", DifficultyEasy, 0, 5, DifficultyEasy},
		{"exactly 0.8 no change", DifficultyMedium, 4, 5, DifficultyMedium},
		{"exactly 0.5 no change", DifficultyMedium, 2, 4, DifficultyMedium},
		{"0.6 keeps easy", DifficultyEasy, 3, 5, DifficultyEasy},
		{"0.6 keeps hard", DifficultyHard, 3, 5, DifficultyHard},
		{"just above 0.8", DifficultyEasy, 9, 11, DifficultyHard},
		{"just below 0.5", DifficultyHard, 4, 9, DifficultyEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDifficulty(tt.current, tt.correct, tt.total)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NextDifficulty(%s, %d, %d) = %s, want %s",
					tt.current, tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestNextDifficulty_ZeroTotal(t *testing.T) {
	got, err := NextDifficulty(DifficultyHard, 0, 0)
	if !errors.Is(err, ErrDivisionUndefined) {
		t.Fatalf("expected ErrDivisionUndefined, got %v", err)
	}
	if got != DifficultyHard {
		t.Errorf("expected current difficulty back, got %s", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"MEDIUM", DifficultyMedium, false},
		{" Hard ", DifficultyHard, false},
		{"extreme", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
