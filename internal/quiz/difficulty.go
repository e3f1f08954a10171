package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is the ordinal level of content requested for an attempt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is the level a fresh session starts at.
const DefaultDifficulty = DifficultyMedium

const (
	promoteAbove = 0.8
	demoteBelow  = 0.5
)

// ErrDivisionUndefined is returned by NextDifficulty when the attempt had
// no questions, so accuracy cannot be computed.
var ErrDivisionUndefined = errors.New("accuracy undefined for zero questions")

// AllDifficulties lists the levels from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty parses a level name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", s)
	}
	return d, nil
}

// NextDifficulty decides the level for the next attempt from the accuracy of
// the one just completed. Above 80% moves to hard, below 50% moves to easy,
// anything else (including exactly 0.8 and 0.5) keeps the current level.
func NextDifficulty(current Difficulty, correct, total int) (Difficulty, error) {
	if total <= 0 {
		return current, ErrDivisionUndefined
	}

	accuracy := float64(correct) / float64(total)

	switch {
	case accuracy > promoteAbove && current != DifficultyHard:
		return DifficultyHard, nil
	case accuracy < demoteBelow && current != DifficultyEasy:
		return DifficultyEasy, nil
	default:
		return current, nil
	}
}
