package draft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/quiz"
)

func answers(texts ...string) []quiz.Answer {
	out := make([]quiz.Answer, len(texts))
	for i, t := range texts {
		out[i] = quiz.Answer{Text: t, Points: i + 1}
	}
	return out
}

func filledDraft(t *testing.T) *Draft {
	t.Helper()
	d := New()
	d.CategoryName = "Coffee order"
	require.NoError(t, d.AddQuestion("Morning drink?", []string{"Espresso", "Latte", "Tea", "Water"}))
	require.NoError(t, d.AddResult("Purist", "Straight to the point.", 3, ""))
	return d
}

// snapshot captures everything observable about a draft.
type snapshot struct {
	Name      string
	Questions []quiz.Question
	Results   []quiz.Result
}

func snap(d *Draft) snapshot {
	return snapshot{d.CategoryName, d.Questions(), d.Results()}
}

func TestAddQuestionDefaultsPointsToPosition(t *testing.T) {
	d := New()
	require.NoError(t, d.AddQuestion("  Pick one  ", []string{" a", "b ", "c", "d"}))

	qs := d.Questions()
	require.Len(t, qs, 1)
	assert.Equal(t, "Pick one", qs[0].Text)
	assert.Equal(t, answers("a", "b", "c", "d"), qs[0].Answers)
}

func TestAddQuestionValidation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		answers []string
		want    error
	}{
		{"blank text", "   ", []string{"a", "b"}, ErrEmptyQuestionText},
		{"blank answer", "Q", []string{"a", " ", "c", "d"}, ErrIncompleteAnswers},
		{"no answers", "Q", nil, ErrIncompleteAnswers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := filledDraft(t)
			before := snap(d)

			err := d.AddQuestion(tt.text, tt.answers)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, snap(d))

			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestEditQuestionText(t *testing.T) {
	d := filledDraft(t)
	require.NoError(t, d.EditQuestionText(0, "Evening drink?"))
	assert.Equal(t, "Evening drink?", d.Questions()[0].Text)

	before := snap(d)
	assert.True(t, errors.Is(d.EditQuestionText(1, "x"), ErrIndexOutOfRange))
	assert.True(t, errors.Is(d.EditQuestionText(-1, "x"), ErrIndexOutOfRange))
	assert.Equal(t, before, snap(d))
}

func TestEditAnswerField(t *testing.T) {
	d := filledDraft(t)

	require.NoError(t, d.EditAnswerField(0, 2, FieldText, "Green tea"))
	require.NoError(t, d.EditAnswerField(0, 1, FieldPoints, " 7 "))
	require.NoError(t, d.EditAnswerField(0, 0, FieldPoints, "-2"))
	require.NoError(t, d.EditAnswerField(0, 3, FieldPoints, "lots"))

	got := d.Questions()[0].Answers
	assert.Equal(t, "Green tea", got[2].Text)
	assert.Equal(t, 7, got[1].Points)
	assert.Equal(t, -2, got[0].Points)
	assert.Equal(t, 0, got[3].Points, "unparsable points fall back to 0")
}

func TestEditAnswerFieldOutOfRange(t *testing.T) {
	d := filledDraft(t)
	before := snap(d)

	assert.True(t, errors.Is(d.EditAnswerField(3, 0, FieldText, "x"), ErrIndexOutOfRange))
	assert.True(t, errors.Is(d.EditAnswerField(0, 4, FieldText, "x"), ErrIndexOutOfRange))
	assert.Equal(t, before, snap(d))
}

func TestEditAnswerFieldUnknownField(t *testing.T) {
	d := filledDraft(t)
	before := snap(d)

	err := d.EditAnswerField(0, 0, Field(9), "zzz")
	assert.True(t, errors.Is(err, ErrUnknownField), "got %v", err)
	assert.Equal(t, before, snap(d))
}

func TestEditAnswerFieldLeadingDigits(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3abc", 3},
		{" 12 ", 12},
		{"-4x", -4},
		{"+5", 5},
		{"abc", 0},
		{"-", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := filledDraft(t)
			require.NoError(t, d.EditAnswerField(0, 0, FieldPoints, tt.in))
			assert.Equal(t, tt.want, d.Questions()[0].Answers[0].Points)
		})
	}
}

func TestEditQuestion(t *testing.T) {
	d := filledDraft(t)

	require.NoError(t, d.EditQuestion(0, " Evening drink? ", []AnswerEdit{
		{Text: "Decaf", Points: "2"},
		{Text: "Cocoa", Points: "nope"},
	}))

	q := d.Questions()[0]
	assert.Equal(t, "Evening drink?", q.Text)
	assert.Equal(t, quiz.Answer{Text: "Decaf", Points: 2}, q.Answers[0])
	assert.Equal(t, quiz.Answer{Text: "Cocoa", Points: 0}, q.Answers[1])
	assert.Equal(t, quiz.Answer{Text: "Tea", Points: 3}, q.Answers[2])
}

func TestEditQuestionIsAtomic(t *testing.T) {
	d := filledDraft(t)
	before := snap(d)

	edits := make([]AnswerEdit, AnswersPerQuestion+1)
	for i := range edits {
		edits[i] = AnswerEdit{Text: "x", Points: "9"}
	}
	err := d.EditQuestion(0, "Changed", edits)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange), "got %v", err)
	assert.True(t, errors.Is(d.EditQuestion(1, "Changed", nil), ErrIndexOutOfRange))
	assert.Equal(t, before, snap(d))
}

func TestDeleteQuestion(t *testing.T) {
	d := filledDraft(t)
	require.NoError(t, d.AddQuestion("Second?", []string{"a", "b", "c", "d"}))

	require.NoError(t, d.DeleteQuestion(0))
	qs := d.Questions()
	require.Len(t, qs, 1)
	assert.Equal(t, "Second?", qs[0].Text)

	assert.True(t, errors.Is(d.DeleteQuestion(1), ErrIndexOutOfRange))
}

func TestAddResultValidation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		desc      string
		threshold int
		want      error
	}{
		{"blank title", "", "d", 3, ErrMissingFields},
		{"blank description", "t", "  ", 3, ErrMissingFields},
		{"zero threshold", "t", "d", 0, ErrInvalidThreshold},
		{"negative threshold", "t", "d", -4, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := filledDraft(t)
			before := snap(d)
			err := d.AddResult(tt.title, tt.desc, tt.threshold, "")
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, snap(d))
		})
	}
}

func TestResultsStaySortedAndDeleteByShownPosition(t *testing.T) {
	d := New()
	require.NoError(t, d.AddResult("High", "h", 10, "https://img/h.png"))
	require.NoError(t, d.AddResult("Low", "l", 2, ""))
	require.NoError(t, d.AddResult("Mid", "m", 6, ""))
	require.NoError(t, d.AddResult("Mid again", "m2", 6, ""))

	var titles []string
	for _, r := range d.Results() {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"Low", "Mid", "Mid again", "High"}, titles)
	assert.Equal(t, "https://img/h.png", d.Results()[3].ImageURL)

	require.NoError(t, d.DeleteResult(1))
	assert.Equal(t, "Mid again", d.Results()[1].Title)
	assert.True(t, errors.Is(d.DeleteResult(3), ErrIndexOutOfRange))
}

func TestParseThreshold(t *testing.T) {
	n, err := ParseThreshold(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, in := range []string{"", "abc", "0", "-3", "4.5"} {
		_, err := ParseThreshold(in)
		assert.True(t, errors.Is(err, ErrInvalidThreshold), "input %q", in)
	}
}

func TestMergeQuestionsAllOrNothing(t *testing.T) {
	d := filledDraft(t)
	before := snap(d)

	generated := []quiz.Question{
		{Text: "Good one", Answers: answers("a", "b", "c", "d")},
		{Text: "Bad one", Answers: answers("a", "", "c", "d")},
		{Text: "Also good", Answers: answers("a", "b", "c", "d")},
	}
	err := d.MergeQuestions(generated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedContent))
	assert.True(t, errors.Is(err, ErrIncompleteAnswers), "cause should be visible")

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Item)
	assert.Equal(t, before, snap(d))

	require.NoError(t, d.MergeQuestions([]quiz.Question{generated[0], generated[2]}))
	assert.Len(t, d.Questions(), 3)
}

func TestMergeQuestionsKeepsGeneratedPoints(t *testing.T) {
	d := New()
	gen := []quiz.Question{{Text: "Q", Answers: []quiz.Answer{{Text: "x", Points: 4}, {Text: "y", Points: 1}}}}
	require.NoError(t, d.MergeQuestions(gen))

	assert.Equal(t, 4, d.Questions()[0].Answers[0].Points)

	gen[0].Answers[0].Points = 99
	assert.Equal(t, 4, d.Questions()[0].Answers[0].Points, "merged questions must not alias the input")
}

func TestMergeResultsAllOrNothing(t *testing.T) {
	d := filledDraft(t)
	before := snap(d)

	err := d.MergeResults([]quiz.Result{
		{Title: "A", Description: "a", Threshold: 4},
		{Title: "B", Description: "", Threshold: 8},
	})
	assert.True(t, errors.Is(err, ErrMalformedContent))
	assert.True(t, errors.Is(err, ErrMissingFields))
	assert.Equal(t, before, snap(d))

	err = d.MergeResults([]quiz.Result{{Title: "Z", Description: "z", Threshold: 0}})
	assert.True(t, errors.Is(err, ErrMalformedContent))
	assert.Equal(t, before, snap(d))

	require.NoError(t, d.MergeResults([]quiz.Result{
		{Title: "Bold", Description: "b", Threshold: 8},
		{Title: "Even", Description: "e", Threshold: 1},
	}))
	var thresholds []int
	for _, r := range d.Results() {
		thresholds = append(thresholds, r.Threshold)
	}
	assert.Equal(t, []int{1, 3, 8}, thresholds)
}

func TestMergeEmptyIsMalformed(t *testing.T) {
	d := New()
	assert.True(t, errors.Is(d.MergeQuestions(nil), ErrMalformedContent))
	assert.True(t, errors.Is(d.MergeResults(nil), ErrMalformedContent))
}

func TestCommitValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Draft)
		want  error
	}{
		{"missing name", func(d *Draft) { d.CategoryName = "  " }, ErrMissingCategoryName},
		{"no questions", func(d *Draft) { _ = d.DeleteQuestion(0) }, ErrNoQuestions},
		{"no results", func(d *Draft) { _ = d.DeleteResult(0) }, ErrNoResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := filledDraft(t)
			tt.setup(d)
			c := catalog.New()

			_, err := d.Commit(c)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestCommitInsertsQuiz(t *testing.T) {
	d := filledDraft(t)
	c := catalog.New()

	q, err := d.Commit(c)
	require.NoError(t, err)
	assert.Regexp(t, `^custom_[0-9a-f-]{36}$`, q.ID)
	assert.Equal(t, "Coffee order", q.Title)

	stored, err := c.Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Questions, stored.Questions)
	assert.Equal(t, q.Results, stored.Results)
}

func TestCommitTwiceYieldsDistinctIDs(t *testing.T) {
	c := catalog.New()

	first, err := filledDraft(t).Commit(c)
	require.NoError(t, err)
	second, err := filledDraft(t).Commit(c)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, c.Len())
}

func TestCommitAvoidsCollisions(t *testing.T) {
	c := catalog.New()
	c.Insert("custom_fixed", quiz.Quiz{Title: "existing"})

	d := filledDraft(t)
	d.NewID = func() string { return "custom_fixed" }

	q, err := d.Commit(c)
	require.NoError(t, err)
	assert.Equal(t, "custom_fixed_2", q.ID)

	existing, _ := c.Get("custom_fixed")
	assert.Equal(t, "existing", existing.Title)
}

func TestMaxScore(t *testing.T) {
	d := filledDraft(t)
	require.NoError(t, d.AddQuestion("Another", []string{"a", "b", "c", "d"}))
	assert.Equal(t, 8, d.MaxScore())
}

func TestValidationErrorMessages(t *testing.T) {
	assert.Equal(t, "add at least one result", ErrNoResults.Error())
	err := malformed(0, ErrEmptyQuestionText)
	assert.Equal(t, "generated content is malformed: item 1: question text is required", err.Error())
}
