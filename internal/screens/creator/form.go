package creator

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/ui/components"
)

type mode int

const (
	modeBrowse mode = iota
	modeName
	modeQuestion
	modeResult
)

// form is a vertical stack of inputs with one focused at a time.
type form struct {
	title  string
	fields []components.TextInput
	focus  int
}

func (f *form) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if i < 0 {
		i = len(f.fields) - 1
	}
	if i >= len(f.fields) {
		i = 0
	}
	for j := range f.fields {
		f.fields[j].Blur()
	}
	f.focus = i
	return f.fields[i].Focus()
}

func (f *form) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.fields[i].Value()
}

func nameForm(current string) *form {
	in := components.NewTextInput("Quiz name", "e.g. Which city should you live in?", false, 80)
	in.SetValue(current)
	return &form{title: "Quiz name", fields: []components.TextInput{in}}
}

// newQuestionForm has the question text followed by one input per answer.
func newQuestionForm() *form {
	fields := []components.TextInput{
		components.NewTextInput("Question", "Ask something situational", false, 200),
	}
	for i := 0; i < draft.AnswersPerQuestion; i++ {
		fields = append(fields, components.NewTextInput(
			"Answer "+strconv.Itoa(i+1)+" ("+strconv.Itoa(i+1)+" pts)", "", false, 120))
	}
	return &form{title: "Add question", fields: fields}
}

// editQuestionForm lists text then answer text and points pairs.
func editQuestionForm(d *draft.Draft, qi int) *form {
	q := d.Questions()[qi]

	text := components.NewTextInput("Question", "", false, 200)
	text.SetValue(q.Text)
	fields := []components.TextInput{text}

	for i, a := range q.Answers {
		n := strconv.Itoa(i + 1)
		at := components.NewTextInput("Answer "+n, "", false, 120)
		at.SetValue(a.Text)
		pt := components.NewTextInput("Points "+n, "", true, 4)
		pt.SetValue(strconv.Itoa(a.Points))
		fields = append(fields, at, pt)
	}
	return &form{title: "Edit question " + strconv.Itoa(qi+1), fields: fields}
}

func resultForm() *form {
	return &form{title: "Add result", fields: []components.TextInput{
		components.NewTextInput("Title", "e.g. The Night Owl", false, 80),
		components.NewTextInput("Description", "Who gets this result?", false, 400),
		components.NewTextInput("Score threshold", "highest score for this result", true, 6),
		components.NewTextInput("Image URL", "optional", false, 300),
	}}
}
