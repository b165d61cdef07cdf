package draft

import (
	"errors"
	"fmt"
)

// Kind classifies a user-correctable validation failure.
type Kind int

const (
	KindEmptyQuestionText Kind = iota + 1
	KindIncompleteAnswers
	KindMissingFields
	KindInvalidThreshold
	KindMalformedContent
	KindMissingCategoryName
	KindNoQuestions
	KindNoResults
)

var kindMessages = map[Kind]string{
	KindEmptyQuestionText:   "question text is required",
	KindIncompleteAnswers:   "every answer needs text",
	KindMissingFields:       "result title and description are required",
	KindInvalidThreshold:    "score threshold must be a positive whole number",
	KindMalformedContent:    "generated content is malformed",
	KindMissingCategoryName: "quiz name is required",
	KindNoQuestions:         "add at least one question",
	KindNoResults:           "add at least one result",
}

// ValidationError is a failure the user can fix by changing their input.
// Use errors.Is against the Err* values to test the kind.
type ValidationError struct {
	Kind Kind

	// Item is the 0-based position of the offending generated item, or -1.
	Item int

	// Err is the underlying violation for MalformedContent.
	Err error
}

func (e *ValidationError) Error() string {
	msg := kindMessages[e.Kind]
	if e.Item >= 0 && e.Err != nil {
		return fmt.Sprintf("%s: item %d: %v", msg, e.Item+1, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches any *ValidationError of the same Kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func invalid(k Kind) *ValidationError {
	return &ValidationError{Kind: k, Item: -1}
}

var (
	ErrEmptyQuestionText   = invalid(KindEmptyQuestionText)
	ErrIncompleteAnswers   = invalid(KindIncompleteAnswers)
	ErrMissingFields       = invalid(KindMissingFields)
	ErrInvalidThreshold    = invalid(KindInvalidThreshold)
	ErrMalformedContent    = invalid(KindMalformedContent)
	ErrMissingCategoryName = invalid(KindMissingCategoryName)
	ErrNoQuestions         = invalid(KindNoQuestions)
	ErrNoResults           = invalid(KindNoResults)
)

// ErrIndexOutOfRange is a caller bug, never a user-facing message.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrUnknownField is returned for a Field value other than FieldText or
// FieldPoints.
var ErrUnknownField = errors.New("unknown answer field")

func outOfRange(what string, i, n int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, what, i, n)
}

func malformed(item int, cause error) error {
	return &ValidationError{Kind: KindMalformedContent, Item: item, Err: cause}
}
