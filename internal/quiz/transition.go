package quiz

import (
	"fmt"
)

// Apply runs one intent against s and returns the resulting session and the
// effects the caller must perform. It is pure.
//
// On ErrInvalidIntent or ErrStaleContent the returned session equals s. A
// *ContentUnavailableError comes back together with the session it left in
// PhaseIdle.
func Apply(s Session, in Intent) (Session, []Effect, error) {
	switch in := in.(type) {
	case RequestContent:
		return applyRequest(s, in)
	case ContentLoaded:
		return applyLoaded(s, in)
	case ContentFailed:
		return applyFailed(s, in)
	case SelectAnswer:
		return applySelect(s, in)
	case Advance:
		return applyAdvance(s, in)
	case Reset:
		return applyReset(s), nil, nil
	default:
		return s, nil, fmt.Errorf("%w: unknown intent %T", ErrInvalidIntent, in)
	}
}

func applyRequest(s Session, in RequestContent) (Session, []Effect, error) {
	if s.Phase != PhaseIdle && s.Phase != PhaseCompleted {
		return s, nil, invalidIntent(s.Phase, in)
	}
	if !in.Difficulty.Valid() {
		return s, nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidIntent, in.Difficulty)
	}

	next := Session{
		Phase:      PhaseContentLoading,
		Difficulty: in.Difficulty,
		Generation: s.Generation + 1,
	}
	return next, []Effect{FetchContent{Generation: next.Generation, Difficulty: next.Difficulty}}, nil
}

func applyLoaded(s Session, in ContentLoaded) (Session, []Effect, error) {
	if s.Phase != PhaseContentLoading || in.Generation != s.Generation {
		return s, nil, fmt.Errorf("%w: generation %d, session at %d (%s)",
			ErrStaleContent, in.Generation, s.Generation, s.Phase)
	}

	if err := in.Content.Validate(); err != nil {
		return idleAfterFailure(s), nil, &ContentUnavailableError{Err: err}
	}

	next := s
	next.Phase = PhaseAwaitingAnswer
	next.Content = in.Content.Clone()
	next.Index = 0
	next.Selected = nil
	next.Score = 0
	next.Feedback = ""
	return next, nil, nil
}

func applyFailed(s Session, in ContentFailed) (Session, []Effect, error) {
	if s.Phase != PhaseContentLoading || in.Generation != s.Generation {
		return s, nil, fmt.Errorf("%w: generation %d, session at %d (%s)",
			ErrStaleContent, in.Generation, s.Generation, s.Phase)
	}
	return idleAfterFailure(s), nil, &ContentUnavailableError{Err: in.Err}
}

func idleAfterFailure(s Session) Session {
	return Session{
		Phase:      PhaseIdle,
		Difficulty: s.Difficulty,
		Generation: s.Generation,
	}
}

func applySelect(s Session, in SelectAnswer) (Session, []Effect, error) {
	if s.Phase != PhaseAwaitingAnswer {
		return s, nil, invalidIntent(s.Phase, in)
	}
	q := s.Question()
	if q == nil || in.Option < 0 || in.Option >= len(q.Options) {
		return s, nil, fmt.Errorf("%w: option %d out of range", ErrInvalidIntent, in.Option)
	}

	next := s
	opt := in.Option
	next.Selected = &opt
	if q.IsCorrect(opt) {
		next.Score++
		next.Feedback = FeedbackCorrect
	} else {
		next.Feedback = FeedbackIncorrect + " " + q.Explanation
	}
	next.Phase = PhaseAnswerRevealed
	return next, nil, nil
}

func applyAdvance(s Session, in Advance) (Session, []Effect, error) {
	if s.Phase != PhaseAnswerRevealed {
		return s, nil, invalidIntent(s.Phase, in)
	}

	if !s.IsLastQuestion() {
		next := s
		next.Index++
		next.Selected = nil
		next.Feedback = ""
		next.Phase = PhaseAwaitingAnswer
		return next, nil, nil
	}

	// Score already includes the final answer; read it before resetting.
	total := s.QuestionCount()
	attempt := Attempt{
		Score:         s.Score,
		QuestionCount: total,
		Difficulty:    s.Difficulty,
	}

	nextDifficulty, err := NextDifficulty(s.Difficulty, s.Score, total)
	if err != nil {
		return s, nil, fmt.Errorf("next difficulty: %w", err)
	}

	next := Session{
		Phase:      PhaseCompleted,
		Difficulty: nextDifficulty,
		Generation: s.Generation,
		Last: &Completion{
			Score:          attempt.Score,
			QuestionCount:  total,
			PlayedAt:       s.Difficulty,
			NextDifficulty: nextDifficulty,
		},
	}
	return next, []Effect{PersistAttempt{Attempt: attempt}}, nil
}

// applyReset bumps the generation so an in-flight fetch is discarded when it
// lands.
func applyReset(s Session) Session {
	return Session{
		Phase:      PhaseIdle,
		Difficulty: s.Difficulty,
		Generation: s.Generation + 1,
	}
}
