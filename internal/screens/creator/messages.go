package creator

import (
	"time"

	"github.com/abhisek/quizcraft/internal/generate"
)

// PublishedMsg is sent after the creator pops itself following a
// successful commit, so the screen below can refresh and highlight the
// new quiz.
type PublishedMsg struct {
	ID    string
	Title string
}

// generatedMsg carries the outcome of a background generation request.
type generatedMsg struct {
	Kind    generate.Kind
	Content *generate.Content
	Err     error
}

// spinnerTickMsg animates the pending-generation indicator.
type spinnerTickMsg time.Time
