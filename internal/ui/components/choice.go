package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Choice is a numbered single-choice list. Arrow keys move the cursor;
// Pick resolves Enter or a digit key to an option index.
type Choice struct {
	Options  []string
	Selected int
}

func NewChoice(options []string) Choice {
	return Choice{Options: options}
}

// Update handles cursor movement.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}
	return c, nil
}

// Pick returns the option chosen by key: the cursor for "enter", or the
// 1-based option for "1".."9".
func (c Choice) Pick(key string) (int, bool) {
	if key == "enter" {
		return c.Selected, len(c.Options) > 0
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(c.Options) {
			return i, true
		}
	}
	return 0, false
}

// View renders the options.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		if i == c.Selected {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
