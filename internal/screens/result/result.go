// Package result shows the outcome of a finished quiz.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Outcome is what the screen displays.
type Outcome struct {
	QuizTitle string
	Result    quiz.Result
	Score     int
	MaxScore  int
}

// ResultScreen displays the resolved result bucket and score.
type ResultScreen struct {
	outcome Outcome
	retake  func() screen.Screen
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. retake, if non-nil, builds a fresh attempt
// for the "play again" key.
func New(outcome Outcome, retake func() screen.Screen) *ResultScreen {
	return &ResultScreen{outcome: outcome, retake: retake}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Your Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.retake != nil {
				next := s.retake()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	o := s.outcome
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(o.QuizTitle))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(o.Result.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(o.Result.Description))
	if o.Result.ImageURL != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(o.Result.ImageURL))
	}

	sections := []string{
		components.Card(b.String(), cw),
		components.ScoreBox(fmt.Sprintf("Your score: %d / %d", o.Score, o.MaxScore), cw),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
