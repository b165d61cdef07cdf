// Package play runs a quiz attempt on screen.
package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/screens/result"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// PlayScreen shows one question at a time and feeds answers to a session.
type PlayScreen struct {
	sess   *session.Session
	choice components.Choice
	errMsg string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New starts an attempt on q.
func New(q quiz.Quiz) *PlayScreen {
	p := &PlayScreen{sess: session.Start(q)}
	p.resetChoice()
	return p
}

func (p *PlayScreen) Init() tea.Cmd {
	// A quiz without questions goes straight to its result.
	if p.sess.Phase() == session.PhaseFinished {
		return p.finish()
	}
	return nil
}

func (p *PlayScreen) Title() string {
	return p.sess.Quiz().Title
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/1-9", Description: "Answer"},
	}
	// No previous question to go back to on the first one.
	if p.sess.CanUndo() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit quiz"})
}

func (p *PlayScreen) resetChoice() {
	q, ok := p.sess.CurrentQuestion()
	if !ok {
		p.choice = components.NewChoice(nil)
		return
	}
	labels := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		labels[i] = a.Text
	}
	p.choice = components.NewChoice(labels)
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}

	if p.errMsg != "" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if p.sess.Phase() != session.PhaseActive {
		return p, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "backspace", "b":
		if p.sess.Undo() {
			p.resetChoice()
		}
		return p, nil
	}

	if i, ok := p.choice.Pick(key); ok {
		return p.answer(i)
	}

	p.choice, _ = p.choice.Update(msg)
	return p, nil
}

func (p *PlayScreen) answer(i int) (screen.Screen, tea.Cmd) {
	q, ok := p.sess.CurrentQuestion()
	if !ok || i < 0 || i >= len(q.Answers) {
		return p, nil
	}
	if err := p.sess.Answer(q.Answers[i].Points); err != nil {
		p.errMsg = err.Error()
		return p, nil
	}
	if p.sess.Phase() == session.PhaseFinished {
		return p, p.finish()
	}
	p.resetChoice()
	return p, nil
}

// finish resolves the result and swaps this screen for the result screen.
func (p *PlayScreen) finish() tea.Cmd {
	r, err := p.sess.ResolveResult()
	if err != nil {
		p.errMsg = err.Error()
		return nil
	}

	q := p.sess.Quiz()
	next := result.New(result.Outcome{
		QuizTitle: q.Title,
		Result:    r,
		Score:     p.sess.Score(),
		MaxScore:  q.MaxScore(),
	}, func() screen.Screen { return New(q) })

	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *PlayScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", p.errMsg))
	}

	q, ok := p.sess.CurrentQuestion()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Working out your result...")
	}

	answered, total := p.sess.Progress()
	barWidth := min(width-8, 60)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", answered+1, total)))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(answered)/float64(total), false, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.choice.View()))

	return b.String()
}
