// Package quiz defines the personality-quiz data model shared by the
// catalog, the session engine and the draft builder.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Quiz is a titled set of questions plus the result buckets its score maps to.
type Quiz struct {
	ID        string     `json:"-" yaml:"-"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
	Results   []Result   `json:"results" yaml:"results"`
}

// Question is one prompt with its answer options. The answer count is not
// fixed.
type Question struct {
	Text    string   `json:"question" yaml:"question"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Answer is one option; choosing it adds Points to the running score.
type Answer struct {
	Text   string `json:"text" yaml:"text"`
	Points int    `json:"points" yaml:"points"`
}

// Result is a score bucket. A score maps to the lowest Threshold that is
// greater than or equal to it.
type Result struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Threshold   int    `json:"score_threshold" yaml:"score_threshold"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// Clone returns a deep copy of q.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		out.Questions[i] = question.Clone()
	}
	out.Results = append([]Result(nil), q.Results...)
	return out
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	q.Answers = append([]Answer(nil), q.Answers...)
	return q
}

// MaxScore is the highest reachable score: the best answer of every
// question summed.
func (q Quiz) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		if len(question.Answers) == 0 {
			continue
		}
		best := question.Answers[0].Points
		for _, a := range question.Answers[1:] {
			best = max(best, a.Points)
		}
		total += best
	}
	return total
}

// Validate checks the shape a catalog document must have: a title, at least
// one result, and at least one answer per question. A quiz without
// questions is valid; starting it finishes immediately.
func (q Quiz) Validate() error {
	var errs []error
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, errors.New("missing title"))
	}
	if len(q.Results) == 0 {
		errs = append(errs, errors.New("no results"))
	}
	for i, question := range q.Questions {
		if len(question.Answers) == 0 {
			errs = append(errs, fmt.Errorf("question %d has no answers", i+1))
		}
	}
	return errors.Join(errs...)
}
