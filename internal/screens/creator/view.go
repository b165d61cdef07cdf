package creator

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (c *CreatorScreen) View(width, height int) string {
	var body string
	if c.form != nil {
		body = c.viewForm(width)
	} else {
		body = c.viewBrowse(width, height-6)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(c.viewStatus())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (c *CreatorScreen) rowLabel(r row) string {
	switch r.kind {
	case rowName:
		name := c.draft.CategoryName
		if name == "" {
			name = theme.Hint.Render("(not set)")
		}
		return "Name: " + name
	case rowQuestion:
		q := c.draft.Questions()[r.index]
		return fmt.Sprintf("Q%d. %s (%d answers)", r.index+1, q.Text, len(q.Answers))
	case rowResult:
		res := c.draft.Results()[r.index]
		return fmt.Sprintf("R%d. %s (up to %d)", r.index+1, res.Title, res.Threshold)
	case rowAddQuestion:
		return "+ Add question"
	case rowAddResult:
		return "+ Add result"
	case rowGenName:
		return "✦ Suggest a name"
	case rowGenQuestions:
		return "✦ Generate questions"
	case rowGenResults:
		return "✦ Generate results"
	case rowPublish:
		return "✔ Publish quiz"
	}
	return ""
}

// viewBrowse renders the row list, scrolled so the cursor stays visible.
func (c *CreatorScreen) viewBrowse(width, visible int) string {
	rows := c.rows()
	visible = max(visible, 3)

	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	end := min(start+visible, len(rows))

	lineWidth := min(width-4, 72)
	lines := make([]string, 0, end-start+2)
	lines = append(lines, theme.Title.Render("New quiz"),
		theme.Hint.Render(fmt.Sprintf("%d questions · %d results · max score %d",
			len(c.draft.Questions()), len(c.draft.Results()), c.draft.MaxScore())), "")

	for i := start; i < end; i++ {
		label := truncate(c.rowLabel(rows[i]), lineWidth-2)
		if i == c.cursor {
			lines = append(lines, theme.Selected.Render("▸ "+label))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+label))
		}
	}
	return lipgloss.NewStyle().Width(lineWidth).Render(strings.Join(lines, "\n"))
}

func (c *CreatorScreen) viewForm(width int) string {
	lines := []string{theme.Title.Render(c.form.title), ""}
	for _, f := range c.form.fields {
		lines = append(lines, f.View())
	}
	return lipgloss.NewStyle().Width(min(width-4, 72)).Render(strings.Join(lines, "\n"))
}

func (c *CreatorScreen) viewStatus() string {
	if c.pending {
		frame := spinnerFrames[c.tickCount%len(spinnerFrames)]
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(frame) +
			theme.Hint.Render(" "+pendingLabel(c.pendingKind))
	}
	if c.status == "" {
		return ""
	}
	if c.statusErr {
		return theme.Problem.Render(c.status)
	}
	return theme.Notice.Render(c.status)
}

func pendingLabel(k generate.Kind) string {
	switch k {
	case generate.KindQuestions:
		return "Writing questions..."
	case generate.KindResults:
		return "Writing results..."
	}
	return "Thinking of a name..."
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
