// Package home is the main menu: every quiz in the catalog plus the
// creator and exit entries.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/screens/creator"
	"github.com/abhisek/quizcraft/internal/screens/play"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/layout"
)

const (
	labelCreate = "CREATE QUIZ"
	labelExit   = "EXIT"
)

// HomeScreen lists the catalog. It rebuilds its menu when a quiz is
// published so the new entry shows up without a restart.
type HomeScreen struct {
	catalog   *catalog.Catalog
	gen       generate.Generator
	aiEnabled bool

	menu   components.Menu
	ids    []string // menu index -> quiz id, parallel to the leading items
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen over c. aiEnabled only changes the banner;
// the creator works without generation.
func New(c *catalog.Catalog, gen generate.Generator, aiEnabled bool) *HomeScreen {
	h := &HomeScreen{catalog: c, gen: gen, aiEnabled: aiEnabled}
	h.rebuild()
	return h
}

func (h *HomeScreen) rebuild() {
	quizzes := h.catalog.List()
	h.ids = make([]string, 0, len(quizzes))
	items := make([]components.MenuItem, 0, len(quizzes)+2)

	for _, q := range quizzes {
		h.ids = append(h.ids, q.ID)
		items = append(items, components.MenuItem{
			Label: q.Title,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: play.New(q)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: labelCreate, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: creator.New(h.catalog, h.gen)}
			}
		}},
		components.MenuItem{Label: labelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(creator.PublishedMsg); ok {
		h.rebuild()
		for i, id := range h.ids {
			if id == msg.ID {
				h.menu.Select(i)
				break
			}
		}
		h.notice = fmt.Sprintf("Published %q", msg.Title)
		return h, nil
	}

	if _, ok := msg.(tea.KeyPressMsg); ok {
		h.notice = ""
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	labels := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		labels[i] = item.Label
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(len(h.ids), h.aiEnabled, cw, compact),
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}

	// Leave room for the title, stats and notice.
	menuRows := height - 14
	if !compact {
		menuRows -= 6
	}
	sections = append(sections, renderMenu(labels, h.menu.Selected, len(h.ids), cw, max(menuRows, 3)))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
