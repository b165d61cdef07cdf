// Package creator is the quiz authoring screen. It drives a draft.Draft
// from manual forms or generated content and publishes it to the catalog.
package creator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/draft"
	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

type rowKind int

const (
	rowName rowKind = iota
	rowQuestion
	rowResult
	rowAddQuestion
	rowAddResult
	rowGenName
	rowGenQuestions
	rowGenResults
	rowPublish
)

// row is one selectable line of the browse view. index is the question or
// result position for rowQuestion and rowResult.
type row struct {
	kind  rowKind
	index int
}

// CreatorScreen owns one draft from open until publish or cancel.
type CreatorScreen struct {
	catalog *catalog.Catalog
	gen     generate.Generator
	draft   *draft.Draft

	mode    mode
	form    *form
	editing int // question being edited, -1 when adding
	cursor  int

	pending     bool
	pendingKind generate.Kind
	tickCount   int

	status    string
	statusErr bool
}

var _ screen.Screen = (*CreatorScreen)(nil)
var _ screen.KeyHintProvider = (*CreatorScreen)(nil)
var _ screen.InputCapturer = (*CreatorScreen)(nil)

// New opens the creator on an empty draft. gen may be generate.Unavailable.
func New(c *catalog.Catalog, gen generate.Generator) *CreatorScreen {
	return &CreatorScreen{
		catalog: c,
		gen:     gen,
		draft:   draft.New(),
		editing: -1,
	}
}

func (c *CreatorScreen) Init() tea.Cmd {
	return nil
}

func (c *CreatorScreen) Title() string {
	return "Create Quiz"
}

// CapturingInput keeps Esc on this screen while a form is open or a
// generation request is pending.
func (c *CreatorScreen) CapturingInput() bool {
	return c.mode != modeBrowse || c.pending
}

func (c *CreatorScreen) KeyHints() []layout.KeyHint {
	if c.pending {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if c.mode != modeBrowse {
		return []layout.KeyHint{
			{Key: "Tab/↑↓", Description: "Field"},
			{Key: "Enter", Description: "Next/Save"},
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Discard"},
	}
}

func (c *CreatorScreen) rows() []row {
	rows := []row{{kind: rowName}}
	for i := range c.draft.Questions() {
		rows = append(rows, row{kind: rowQuestion, index: i})
	}
	for i := range c.draft.Results() {
		rows = append(rows, row{kind: rowResult, index: i})
	}
	return append(rows,
		row{kind: rowAddQuestion},
		row{kind: rowAddResult},
		row{kind: rowGenName},
		row{kind: rowGenQuestions},
		row{kind: rowGenResults},
		row{kind: rowPublish},
	)
}

func (c *CreatorScreen) rowIndex(kind rowKind) int {
	for i, r := range c.rows() {
		if r.kind == kind {
			return i
		}
	}
	return 0
}

func (c *CreatorScreen) clampCursor() {
	n := len(c.rows())
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *CreatorScreen) setStatus(msg string, isErr bool) {
	c.status = msg
	c.statusErr = isErr
}

func (c *CreatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return c, c.handleGenerated(msg)

	case spinnerTickMsg:
		if !c.pending {
			return c, nil
		}
		c.tickCount++
		return c, spinnerTick()

	case tea.KeyPressMsg:
		// Input is disabled while a request is in flight.
		if c.pending {
			return c, nil
		}
		if c.mode != modeBrowse {
			return c, c.handleFormKey(msg)
		}
		return c, c.handleBrowseKey(msg)
	}

	if c.form != nil {
		return c, c.form.update(msg)
	}
	return c, nil
}

func (c *CreatorScreen) handleBrowseKey(msg tea.KeyPressMsg) tea.Cmd {
	rows := c.rows()
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(rows)-1 {
			c.cursor++
		}
	case "d", "delete":
		return c.deleteRow(rows[c.cursor])
	case "enter":
		return c.activate(rows[c.cursor])
	}
	return nil
}

func (c *CreatorScreen) activate(r row) tea.Cmd {
	switch r.kind {
	case rowName:
		return c.openForm(modeName, nameForm(c.draft.CategoryName), -1)
	case rowQuestion:
		return c.openForm(modeQuestion, editQuestionForm(c.draft, r.index), r.index)
	case rowAddQuestion:
		return c.openForm(modeQuestion, newQuestionForm(), -1)
	case rowAddResult:
		return c.openForm(modeResult, resultForm(), -1)
	case rowGenName:
		return c.startGeneration(generate.KindCategory)
	case rowGenQuestions:
		return c.startGeneration(generate.KindQuestions)
	case rowGenResults:
		return c.startGeneration(generate.KindResults)
	case rowPublish:
		return c.publish()
	}
	return nil
}

func (c *CreatorScreen) deleteRow(r row) tea.Cmd {
	var err error
	switch r.kind {
	case rowQuestion:
		err = c.draft.DeleteQuestion(r.index)
	case rowResult:
		err = c.draft.DeleteResult(r.index)
	default:
		return nil
	}
	if err != nil {
		c.setStatus(err.Error(), true)
		return nil
	}
	c.clampCursor()
	c.setStatus("Deleted.", false)
	return nil
}

func (c *CreatorScreen) openForm(m mode, f *form, editing int) tea.Cmd {
	c.mode = m
	c.form = f
	c.editing = editing
	c.status = ""
	return f.focusField(0)
}

func (c *CreatorScreen) closeForm() {
	c.mode = modeBrowse
	c.form = nil
	c.editing = -1
}

func (c *CreatorScreen) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.closeForm()
		return nil
	case "tab", "down":
		return c.form.focusField(c.form.focus + 1)
	case "shift+tab", "up":
		return c.form.focusField(c.form.focus - 1)
	case "ctrl+s":
		return c.saveForm()
	case "enter":
		if c.form.onLast() {
			return c.saveForm()
		}
		return c.form.focusField(c.form.focus + 1)
	}
	return c.form.update(msg)
}

// saveForm applies the open form to the draft. On a validation error the
// form stays open with the message shown and the draft untouched.
func (c *CreatorScreen) saveForm() tea.Cmd {
	var (
		err  error
		done string
	)
	switch c.mode {
	case modeName:
		c.draft.CategoryName = strings.TrimSpace(c.form.value(0))
		done = "Name set."
	case modeQuestion:
		if c.editing >= 0 {
			err = c.applyQuestionEdit()
			done = "Question updated."
		} else {
			answers := make([]string, 0, len(c.form.fields)-1)
			for i := 1; i < len(c.form.fields); i++ {
				answers = append(answers, c.form.value(i))
			}
			err = c.draft.AddQuestion(c.form.value(0), answers)
			done = "Question added."
		}
	case modeResult:
		err = c.saveResult()
		done = "Result added."
	}

	if err != nil {
		c.setStatus(describe(err), true)
		return nil
	}
	c.closeForm()
	c.setStatus(done, false)
	return nil
}

func (c *CreatorScreen) applyQuestionEdit() error {
	var answers []draft.AnswerEdit
	for ai := 0; 2+2*ai < len(c.form.fields); ai++ {
		answers = append(answers, draft.AnswerEdit{
			Text:   c.form.value(1 + 2*ai),
			Points: c.form.value(2 + 2*ai),
		})
	}
	return c.draft.EditQuestion(c.editing, c.form.value(0), answers)
}

func (c *CreatorScreen) saveResult() error {
	threshold, err := draft.ParseThreshold(c.form.value(2))
	if err != nil {
		return err
	}
	return c.draft.AddResult(c.form.value(0), c.form.value(1), threshold, c.form.value(3))
}

func (c *CreatorScreen) startGeneration(kind generate.Kind) tea.Cmd {
	if c.pending {
		c.setStatus(describe(generate.ErrAlreadyInProgress), true)
		return nil
	}

	c.pending = true
	c.pendingKind = kind
	c.tickCount = 0
	c.status = ""

	gen := c.gen
	req := generate.RequestFor(kind, c.draft)
	return tea.Batch(spinnerTick(), func() tea.Msg {
		content, err := gen.Generate(context.Background(), req)
		return generatedMsg{Kind: kind, Content: content, Err: err}
	})
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (c *CreatorScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	c.pending = false
	if msg.Err != nil {
		c.setStatus(describe(msg.Err), true)
		return nil
	}
	if err := msg.Content.Apply(c.draft); err != nil {
		c.setStatus(describe(err), true)
		return nil
	}

	switch msg.Kind {
	case generate.KindQuestions:
		c.setStatus(fmt.Sprintf("Added %d generated questions.", len(msg.Content.Questions)), false)
	case generate.KindResults:
		c.setStatus(fmt.Sprintf("Added %d generated results.", len(msg.Content.Results)), false)
	default:
		c.setStatus(fmt.Sprintf("Suggested name: %s", msg.Content.Category), false)
	}
	return nil
}

func (c *CreatorScreen) publish() tea.Cmd {
	q, err := c.draft.Commit(c.catalog)
	if err != nil {
		c.setStatus(describe(err), true)
		return nil
	}
	published := PublishedMsg{ID: q.ID, Title: q.Title}
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return published },
	)
}

// describe turns an error into the inline message shown to the author.
func describe(err error) string {
	var ve *draft.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, generate.ErrAlreadyInProgress):
		return "Still working on the last request, please wait."
	case errors.Is(err, generate.ErrGenerationFailed):
		return "Could not generate content: " + err.Error()
	}
	return err.Error()
}
