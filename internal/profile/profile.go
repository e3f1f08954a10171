package profile

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lectiz/internal/quiz"
)

var (
	// ErrNotFound is returned by Store.Load for an unknown identifier.
	ErrNotFound = errors.New("profile not found")

	// ErrEmptyName is returned when registering with a blank display name.
	ErrEmptyName = errors.New("display name must not be empty")

	// ErrNoActiveProfile is returned by operations that need a logged-in user.
	ErrNoActiveProfile = errors.New("no active profile")

	// ErrNotRemembered accompanies a successful Register whose active
	// pointer could not be written. The profile is saved and active for
	// this run but will not be resumed after a restart.
	ErrNotRemembered = errors.New("active profile not remembered")
)

// UserProfile is a registered learner and their attempt history.
type UserProfile struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time

	// History is append-only, oldest first.
	History []quiz.Attempt
}

// Clone returns a copy whose History does not alias p's.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.History = append([]quiz.Attempt(nil), p.History...)
	return &out
}

// LastAttempt returns the most recent attempt, if any.
func (p *UserProfile) LastAttempt() (quiz.Attempt, bool) {
	if p == nil || len(p.History) == 0 {
		return quiz.Attempt{}, false
	}
	return p.History[len(p.History)-1], true
}

// StartingDifficulty is the level for the profile's next attempt: the
// difficulty policy applied to the most recent attempt, or the default for
// a profile with no history.
func (p *UserProfile) StartingDifficulty() quiz.Difficulty {
	last, ok := p.LastAttempt()
	if !ok || !last.Difficulty.Valid() {
		return quiz.DefaultDifficulty
	}
	next, err := quiz.NextDifficulty(last.Difficulty, last.Score, last.QuestionCount)
	if err != nil {
		return last.Difficulty
	}
	return next
}

// Store loads and saves profiles by identifier. Save is last-write-wins.
type Store interface {
	Load(ctx context.Context, id string) (*UserProfile, error)
	Save(ctx context.Context, p *UserProfile) error
}

// ActivePointer remembers which profile is logged in across restarts.
type ActivePointer interface {
	ActiveProfileID(ctx context.Context) (string, error)
	SetActiveProfileID(ctx context.Context, id string) error
	ClearActiveProfileID(ctx context.Context) error
}
