// Package session runs one attempt at a quiz: it walks the questions,
// keeps a reversible history of awarded points and resolves the final
// score to a result bucket.
package session

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/abhisek/quizcraft/internal/quiz"
)

var (
	ErrNotActive   = errors.New("session is not active")
	ErrNotFinished = errors.New("session is not finished")
	ErrNoResults   = errors.New("quiz has no results")
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // no quiz started
	PhaseActive                // answering questions
	PhaseFinished              // every question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Session is one attempt at a quiz. The zero value is Idle.
//
// Invariants: score == sum(history) and index == len(history).
type Session struct {
	ID string

	quiz    quiz.Quiz
	index   int
	score   int
	history []int
	phase   Phase
}

// Start begins an attempt on a private copy of q. A quiz with no questions
// is finished immediately.
func Start(q quiz.Quiz) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		quiz:  q.Clone(),
		phase: PhaseActive,
	}
	if len(s.quiz.Questions) == 0 {
		s.phase = PhaseFinished
	}
	return s
}

// Answer records the points of the chosen answer and advances. Any integer
// is accepted.
func (s *Session) Answer(points int) error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	s.history = append(s.history, points)
	s.score += points
	s.index++
	if s.index == len(s.quiz.Questions) {
		s.phase = PhaseFinished
	}
	return nil
}

// Undo reverts the most recent answer. It is a no-op, returning false,
// unless the session is Active past its first question.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	last := len(s.history) - 1
	s.score -= s.history[last]
	s.history = s.history[:last]
	s.index--
	return true
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	return s.phase == PhaseActive && s.index > 0
}

// ResolveResult maps the final score to a result bucket.
func (s *Session) ResolveResult() (quiz.Result, error) {
	if s.phase != PhaseFinished {
		return quiz.Result{}, ErrNotFinished
	}
	return Resolve(s.quiz.Results, s.score)
}

// Resolve returns the result with the smallest threshold >= score. A score
// above every threshold gets the highest bucket. Equal thresholds resolve
// to the one listed first.
func Resolve(results []quiz.Result, score int) (quiz.Result, error) {
	if len(results) == 0 {
		return quiz.Result{}, ErrNoResults
	}

	sorted := append([]quiz.Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold < sorted[j].Threshold
	})

	for _, r := range sorted {
		if score <= r.Threshold {
			return r, nil
		}
	}

	// Clamp to the top threshold, first listed among equals.
	top := len(sorted) - 1
	for top > 0 && sorted[top-1].Threshold == sorted[top].Threshold {
		top--
	}
	return sorted[top], nil
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Score() int { return s.score }

// Index is the position of the current question, 0-based.
func (s *Session) Index() int { return s.index }

// Quiz returns the session's snapshot of the quiz.
func (s *Session) Quiz() quiz.Quiz { return s.quiz }

// History returns a copy of the awarded points in answer order.
func (s *Session) History() []int {
	return append([]int(nil), s.history...)
}

// CurrentQuestion returns the question being asked, or false when the
// session is not Active.
func (s *Session) CurrentQuestion() (quiz.Question, bool) {
	if s.phase != PhaseActive {
		return quiz.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// Progress returns (answered, total).
func (s *Session) Progress() (int, int) {
	return s.index, len(s.quiz.Questions)
}
