// Package boot is the first screen: it loads the catalog in the background
// and hands over to the home screen, or shows a terminal error.
package boot

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

const tickInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

type catalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// LoadFunc fetches the catalog.
type LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

// BootScreen shows a spinner while the catalog loads.
type BootScreen struct {
	load      LoadFunc
	next      func(*catalog.Catalog) screen.Screen
	tickCount int
	err       error
	done      bool
}

var _ screen.Screen = (*BootScreen)(nil)
var _ screen.KeyHintProvider = (*BootScreen)(nil)

// New creates a BootScreen that replaces itself with next(catalog) once
// load succeeds.
func New(load LoadFunc, next func(*catalog.Catalog) screen.Screen) *BootScreen {
	return &BootScreen{load: load, next: next}
}

func (b *BootScreen) Title() string {
	if b.err != nil {
		return "Error"
	}
	return ""
}

func (b *BootScreen) KeyHints() []layout.KeyHint {
	if b.err != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (b *BootScreen) Init() tea.Cmd {
	load := b.load
	return tea.Batch(tick(), func() tea.Msg {
		c, err := load(context.Background())
		return catalogLoadedMsg{Catalog: c, Err: err}
	})
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *BootScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if b.err != nil || b.done {
			return b, nil
		}
		b.tickCount++
		return b, tick()

	case catalogLoadedMsg:
		if msg.Err != nil {
			b.err = msg.Err
			return b, nil
		}
		if b.done {
			return b, nil
		}
		b.done = true
		next := b.next(msg.Catalog)
		return b, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		// A failed load is terminal.
		if b.err != nil {
			return b, tea.Quit
		}
	}
	return b, nil
}

func (b *BootScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if b.err != nil {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not load quizzes"),
			"",
			lipgloss.NewStyle().
				Foreground(theme.Text).
				Width(min(width-8, 70)).
				Align(lipgloss.Center).
				Render(b.err.Error()),
			"",
			theme.Hint.Render("press any key to quit"),
		)
	} else {
		frame := spinnerFrames[b.tickCount%len(spinnerFrames)]
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(frame)+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(" Loading quizzes..."),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
