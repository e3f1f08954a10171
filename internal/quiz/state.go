package quiz

// Phase is the lifecycle phase of a quiz session.
type Phase int

const (
	PhaseIdle           Phase = iota // No content loaded
	PhaseContentLoading              // Waiting on the content provider
	PhaseAwaitingAnswer              // Question shown, nothing selected
	PhaseAnswerRevealed              // Selection locked, feedback shown
	PhaseCompleted                   // Last question answered and recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseContentLoading:
		return "content-loading"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswerRevealed:
		return "answer-revealed"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Feedback shown after a selection. An incorrect answer appends the
// question's explanation to FeedbackIncorrect.
const (
	FeedbackCorrect   = "¡Correcto!"
	FeedbackIncorrect = "Incorrecto."
)

// Session is the transient, in-memory state of one quiz run. It is a value:
// Apply returns a new Session rather than mutating its input.
type Session struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Content is the active set. Nil in PhaseIdle, PhaseContentLoading and
	// PhaseCompleted.
	Content *ContentSet

	// Index is the current question. Always a valid index into
	// Content.Questions while awaiting or revealing an answer.
	Index int

	// Selected is the locked-in option for the current question, nil until
	// the first selection.
	Selected *int

	// Score counts correct first selections in the current set.
	Score int

	// Difficulty is the level content is requested at. It survives Reset and
	// is updated by the difficulty policy on completion.
	Difficulty Difficulty

	// Feedback is the text computed on selection.
	Feedback string

	// Generation identifies the outstanding content request. Results tagged
	// with any other generation are discarded.
	Generation uint64

	// Last describes the most recently completed set. Set on completion and
	// cleared by Reset or a new request.
	Last *Completion
}

// Completion summarises a finished set for the "score out of N" display.
type Completion struct {
	Score          int
	QuestionCount  int
	PlayedAt       Difficulty
	NextDifficulty Difficulty
}

// NewSession returns an idle session at the given starting level.
func NewSession(d Difficulty) Session {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return Session{Phase: PhaseIdle, Difficulty: d}
}

// Question returns the current question, or nil outside of an active set.
func (s Session) Question() *Question {
	if s.Content == nil || s.Index < 0 || s.Index >= len(s.Content.Questions) {
		return nil
	}
	return &s.Content.Questions[s.Index]
}

// QuestionCount returns the number of questions in the active set.
func (s Session) QuestionCount() int {
	if s.Content == nil {
		return 0
	}
	return len(s.Content.Questions)
}

// IsLastQuestion reports whether the current question is the final one.
func (s Session) IsLastQuestion() bool {
	return s.Content != nil && s.Index == len(s.Content.Questions)-1
}

// LastAnswerCorrect reports whether the locked-in selection is correct.
func (s Session) LastAnswerCorrect() bool {
	q := s.Question()
	return q != nil && s.Selected != nil && q.IsCorrect(*s.Selected)
}

// Intent is an input to the state machine.
type Intent interface {
	intentName() string
}

// RequestContent asks for a new set at the given level.
type RequestContent struct {
	Difficulty Difficulty
}

// ContentLoaded delivers the provider's result for a request.
type ContentLoaded struct {
	Generation uint64
	Content    *ContentSet
}

// ContentFailed delivers the provider's error for a request.
type ContentFailed struct {
	Generation uint64
	Err        error
}

// SelectAnswer locks in an option for the current question.
type SelectAnswer struct {
	Option int
}

// Advance moves past a revealed answer.
type Advance struct{}

// Reset discards the session and any outstanding request.
type Reset struct{}

func (RequestContent) intentName() string { return "request-content" }
func (ContentLoaded) intentName() string  { return "content-loaded" }
func (ContentFailed) intentName() string  { return "content-failed" }
func (SelectAnswer) intentName() string   { return "select-answer" }
func (Advance) intentName() string        { return "advance" }
func (Reset) intentName() string          { return "reset" }

// Effect is a side effect requested by a transition. The driver performs
// effects; Apply never does I/O.
type Effect interface {
	effectName() string
}

// FetchContent asks the driver to call the content provider and feed the
// result back as ContentLoaded or ContentFailed with the same Generation.
type FetchContent struct {
	Generation uint64
	Difficulty Difficulty
}

// PersistAttempt asks the driver to record a completed attempt. ID and
// Timestamp are left for the driver to assign.
type PersistAttempt struct {
	Attempt Attempt
}

func (FetchContent) effectName() string   { return "fetch-content" }
func (PersistAttempt) effectName() string { return "persist-attempt" }
