// Package generate asks an LLM for quiz content: a category name, a batch
// of questions, or a set of result buckets. Its output is always merged
// through the draft builder's validation before it becomes part of a quiz.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/quiz"
)

var (
	// ErrGenerationFailed wraps every transport, provider or decode failure.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrAlreadyInProgress rejects a request made while another is pending.
	ErrAlreadyInProgress = errors.New("a generation request is already in progress")
)

// Kind is what to generate.
type Kind int

const (
	KindCategory Kind = iota
	KindQuestions
	KindResults
)

func (k Kind) String() string {
	switch k {
	case KindQuestions:
		return "questions"
	case KindResults:
		return "results"
	default:
		return "category"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindCategory, KindQuestions, KindResults} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown generation kind %q (want category, questions or results)", s)
}

// Request carries the context a generation needs.
type Request struct {
	Kind         Kind
	CategoryName string

	// QuestionCount is the number of questions already in the draft. Results
	// are pitched against QuestionCount × draft.MaxPointsPerAnswer.
	QuestionCount int
}

// MaxScore is the best achievable score the results prompt targets.
func (r Request) MaxScore() int {
	return r.QuestionCount * draft.MaxPointsPerAnswer
}

// RequestFor builds a request from the current state of d.
func RequestFor(kind Kind, d *draft.Draft) Request {
	return Request{
		Kind:          kind,
		CategoryName:  d.CategoryName,
		QuestionCount: len(d.Questions()),
	}
}

// Content is the decoded output. Only the field matching Kind is set.
type Content struct {
	Kind      Kind
	Category  string
	Questions []quiz.Question
	Results   []quiz.Result
}

// Apply merges c into d. A category replaces the draft's name; questions
// and results go through the draft's all-or-nothing merge.
func (c *Content) Apply(d *draft.Draft) error {
	switch c.Kind {
	case KindQuestions:
		return d.MergeQuestions(c.Questions)
	case KindResults:
		return d.MergeResults(c.Results)
	default:
		d.CategoryName = c.Category
		return nil
	}
}

// Generator produces quiz content.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Content, error)
}

// Unavailable is the Generator used when no LLM provider is configured.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Generate(context.Context, Request) (*Content, error) {
	return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, u.Reason)
}
