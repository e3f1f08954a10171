package reading

import "github.com/abhisek/lectiz/internal/quiz"

// contentMsg carries the outcome of a content fetch back into Update. The
// intent is either quiz.ContentLoaded or quiz.ContentFailed and keeps the
// generation of the request that produced it.
type contentMsg struct {
	Intent quiz.Intent
}
