// Package draft builds a new quiz step by step. Every operation either
// succeeds or returns an error and leaves the draft exactly as it was.
package draft

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/quiz"
)

const (
	// AnswersPerQuestion is how many answers the authoring form and the
	// generator produce per question.
	AnswersPerQuestion = 4

	// MaxPointsPerAnswer is the highest default or generated answer value.
	MaxPointsPerAnswer = 4

	// IDPrefix starts every id assigned by Commit.
	IDPrefix = "custom_"
)

// Field selects which part of an answer EditAnswerField changes.
type Field int

const (
	FieldText Field = iota
	FieldPoints
)

// Draft is an in-progress quiz. Results are kept sorted by threshold so
// positions shown to the user match positions passed to DeleteResult.
type Draft struct {
	CategoryName string

	questions []quiz.Question
	results   []quiz.Result

	// NewID produces candidate quiz ids. Defaults to a time-ordered UUID.
	NewID func() string
}

func New() *Draft {
	return &Draft{}
}

func defaultID() string {
	return IDPrefix + uuid.Must(uuid.NewV7()).String()
}

// Questions returns a copy of the draft's questions.
func (d *Draft) Questions() []quiz.Question {
	out := make([]quiz.Question, len(d.questions))
	for i, q := range d.questions {
		out[i] = q.Clone()
	}
	return out
}

// Results returns a copy of the draft's results, ascending by threshold.
func (d *Draft) Results() []quiz.Result {
	return append([]quiz.Result(nil), d.results...)
}

// MaxScore is the best score reachable with generated or default points:
// question count × MaxPointsPerAnswer.
func (d *Draft) MaxScore() int {
	return len(d.questions) * MaxPointsPerAnswer
}

// AddQuestion appends a question. Answer k (1-based) is worth k points.
func (d *Draft) AddQuestion(text string, answerTexts []string) error {
	q := quiz.Question{Text: strings.TrimSpace(text)}
	for i, a := range answerTexts {
		q.Answers = append(q.Answers, quiz.Answer{Text: strings.TrimSpace(a), Points: i + 1})
	}
	if err := checkQuestion(q); err != nil {
		return err
	}
	d.questions = append(d.questions, q)
	return nil
}

func checkQuestion(q quiz.Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestionText
	}
	if len(q.Answers) == 0 {
		return ErrIncompleteAnswers
	}
	for _, a := range q.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return ErrIncompleteAnswers
		}
	}
	return nil
}

// EditQuestionText replaces the text of question i.
func (d *Draft) EditQuestionText(i int, text string) error {
	if i < 0 || i >= len(d.questions) {
		return outOfRange("question", i, len(d.questions))
	}
	d.questions[i].Text = strings.TrimSpace(text)
	return nil
}

// EditAnswerField sets the text or points of one answer. Points are read
// from leading digits the way a lenient integer parse would: "3abc" is 3,
// and a value with no leading digits is stored as 0.
func (d *Draft) EditAnswerField(qi, ai int, field Field, value string) error {
	if qi < 0 || qi >= len(d.questions) {
		return outOfRange("question", qi, len(d.questions))
	}
	answers := d.questions[qi].Answers
	if ai < 0 || ai >= len(answers) {
		return outOfRange("answer", ai, len(answers))
	}

	switch field {
	case FieldText:
		answers[ai].Text = strings.TrimSpace(value)
	case FieldPoints:
		answers[ai].Points = parsePoints(value)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	return nil
}

// AnswerEdit is the new text and raw points value for one answer.
type AnswerEdit struct {
	Text   string
	Points string
}

// EditQuestion replaces the text of question i and its first len(answers)
// answers in one step. Nothing changes unless every index is valid.
func (d *Draft) EditQuestion(i int, text string, answers []AnswerEdit) error {
	if i < 0 || i >= len(d.questions) {
		return outOfRange("question", i, len(d.questions))
	}
	q := &d.questions[i]
	if len(answers) > len(q.Answers) {
		return outOfRange("answer", len(answers)-1, len(q.Answers))
	}

	q.Text = strings.TrimSpace(text)
	for ai, e := range answers {
		q.Answers[ai].Text = strings.TrimSpace(e.Text)
		q.Answers[ai].Points = parsePoints(e.Points)
	}
	return nil
}

func parsePoints(value string) int {
	v := strings.TrimSpace(value)
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	start := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

// DeleteQuestion removes question i.
func (d *Draft) DeleteQuestion(i int) error {
	if i < 0 || i >= len(d.questions) {
		return outOfRange("question", i, len(d.questions))
	}
	d.questions = append(d.questions[:i:i], d.questions[i+1:]...)
	return nil
}

// DeleteResult removes the result at position i of Results().
func (d *Draft) DeleteResult(i int) error {
	if i < 0 || i >= len(d.results) {
		return outOfRange("result", i, len(d.results))
	}
	d.results = append(d.results[:i:i], d.results[i+1:]...)
	return nil
}

// ParseThreshold converts form input to a threshold.
func ParseThreshold(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrInvalidThreshold
	}
	return n, nil
}

// AddResult inserts a result bucket. The image URL is optional.
func (d *Draft) AddResult(title, description string, threshold int, imageURL string) error {
	r := quiz.Result{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Threshold:   threshold,
		ImageURL:    strings.TrimSpace(imageURL),
	}
	if err := checkResult(r); err != nil {
		return err
	}
	d.insertResult(r)
	return nil
}

func checkResult(r quiz.Result) error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" {
		return ErrMissingFields
	}
	if r.Threshold <= 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// insertResult places r after every result with a threshold <= its own.
func (d *Draft) insertResult(r quiz.Result) {
	i := sort.Search(len(d.results), func(i int) bool {
		return d.results[i].Threshold > r.Threshold
	})
	d.results = append(d.results, quiz.Result{})
	copy(d.results[i+1:], d.results[i:])
	d.results[i] = r
}

// MergeQuestions appends generated questions. Each is checked like a
// manually entered one; on the first violation nothing is merged.
func (d *Draft) MergeQuestions(qs []quiz.Question) error {
	if len(qs) == 0 {
		return malformed(-1, fmt.Errorf("no questions"))
	}
	for i, q := range qs {
		if err := checkQuestion(q); err != nil {
			return malformed(i, err)
		}
	}
	for _, q := range qs {
		q = q.Clone()
		q.Text = strings.TrimSpace(q.Text)
		for i := range q.Answers {
			q.Answers[i].Text = strings.TrimSpace(q.Answers[i].Text)
		}
		d.questions = append(d.questions, q)
	}
	return nil
}

// MergeResults inserts generated results, all or nothing.
func (d *Draft) MergeResults(rs []quiz.Result) error {
	if len(rs) == 0 {
		return malformed(-1, fmt.Errorf("no results"))
	}
	for i, r := range rs {
		if err := checkResult(r); err != nil {
			return malformed(i, err)
		}
	}
	for _, r := range rs {
		r.Title = strings.TrimSpace(r.Title)
		r.Description = strings.TrimSpace(r.Description)
		d.insertResult(r)
	}
	return nil
}

// Commit turns the draft into a quiz and inserts it into c under a fresh
// id not yet present in c.
func (d *Draft) Commit(c *catalog.Catalog) (quiz.Quiz, error) {
	title := strings.TrimSpace(d.CategoryName)
	switch {
	case title == "":
		return quiz.Quiz{}, ErrMissingCategoryName
	case len(d.questions) == 0:
		return quiz.Quiz{}, ErrNoQuestions
	case len(d.results) == 0:
		return quiz.Quiz{}, ErrNoResults
	}

	newID := d.NewID
	if newID == nil {
		newID = defaultID
	}
	base := newID()
	id := base
	for n := 2; c.Has(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}

	q := quiz.Quiz{
		ID:        id,
		Title:     title,
		Questions: d.Questions(),
		Results:   d.Results(),
	}
	c.Insert(id, q)
	return q, nil
}
