package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

const titleFull = ` ██████╗ ██╗   ██╗██╗███████╗
██╔═══██╗██║   ██║██║╚══███╔╝
██║   ██║██║   ██║██║  ███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝
╚██████╔╝╚██████╔╝██║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const titleCompact = "Q · U · I · Z · C · R · A · F · T"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStatsBar shows the quiz count and whether generation is available.
func renderStatsBar(quizzes int, aiEnabled bool, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	aiStyle := lipgloss.NewStyle().Foreground(theme.Frame).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		ai := dimStyle.Render("✦off")
		if aiEnabled {
			ai = aiStyle.Render("✦on")
		}
		stats = fmt.Sprintf("%s %s", countStyle.Render(fmt.Sprintf("★%d", quizzes)), ai)
	} else {
		ai := dimStyle.Render("✦ AI OFF")
		if aiEnabled {
			ai = aiStyle.Render("✦ AI READY")
		}
		stats = fmt.Sprintf("%s  %s", countStyle.Render(fmt.Sprintf("★ %d QUIZZES", quizzes)), ai)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Frame).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Notice.Render("✔ " + text))
}

// renderMenu draws up to rows entries, scrolled to keep selected visible.
// The first quizCount labels are quizzes and get a separator after them.
func renderMenu(labels []string, selected, quizCount, cw, rows int) string {
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, len(labels))

	var lines []string
	if start > 0 {
		lines = append(lines, theme.Hint.Render("▲"))
	}
	for i := start; i < end; i++ {
		if i == quizCount && quizCount > 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(cw-8, 24))))
		}
		label := labels[i]
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}
	if end < len(labels) {
		lines = append(lines, theme.Hint.Render("▼"))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
