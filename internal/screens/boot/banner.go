package boot

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

const bannerWide = `╔═╗ ╦ ╦ ╦ ╔═╗ ╔═╗ ╦═╗ ╔═╗ ╔═╗ ╔╦╗
║═╬╗║ ║ ║ ╔═╝ ║   ╠╦╝ ╠═╣ ╠╣   ║
╚═╝╚╚═╝ ╩ ╚═╝ ╚═╝ ╩╚═ ╩ ╩ ╚    ╩ `

const bannerCompact = "Q U I Z C R A F T"

// RenderBanner returns the title banner, falling back to spaced letters
// below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerWide)
}
