package boot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestBoot(loadErr error) (*BootScreen, *int) {
	calls := 0
	load := func(context.Context) (*catalog.Catalog, error) {
		if loadErr != nil {
			return nil, loadErr
		}
		return catalog.New(), nil
	}
	next := func(*catalog.Catalog) screen.Screen {
		calls++
		return &stubScreen{}
	}
	return New(load, next), &calls
}

func TestLoadSuccessReplacesScreen(t *testing.T) {
	b, calls := newTestBoot(nil)

	_, cmd := b.Update(catalogLoadedMsg{Catalog: catalog.New()})
	if cmd == nil {
		t.Fatal("expected a command after load")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("next should be called once, got %d", *calls)
	}

	// Ticks stop after hand-over.
	if _, cmd := b.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("tick after load should not reschedule")
	}
}

func TestLoadFailureIsTerminal(t *testing.T) {
	loadErr := &catalog.LoadError{Source: "quiz.json", Err: errors.New("no such file")}
	b, calls := newTestBoot(loadErr)

	b.Update(catalogLoadedMsg{Err: loadErr})
	if *calls != 0 {
		t.Error("next should not be called on failure")
	}
	if b.Title() != "Error" {
		t.Errorf("Title = %q, want Error", b.Title())
	}

	view := b.View(80, 24)
	if !strings.Contains(view, "Could not load quizzes") || !strings.Contains(view, "no such file") {
		t.Errorf("error view missing details:\n%s", view)
	}

	_, cmd := b.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	b, _ := newTestBoot(nil)
	if _, cmd := b.Update(tea.KeyPressMsg{Code: 'q', Text: "q"}); cmd != nil {
		t.Error("keypress while loading should do nothing")
	}
}

func TestInitRunsLoad(t *testing.T) {
	b, calls := newTestBoot(nil)
	if b.Init() == nil {
		t.Fatal("expected init command")
	}
	// Drive the load command directly.
	msg := catalogLoadedMsg{}
	c, err := b.load(context.Background())
	msg.Catalog, msg.Err = c, err
	b.Update(msg)
	if *calls != 1 {
		t.Errorf("next called %d times, want 1", *calls)
	}
}

func TestSpinnerAdvances(t *testing.T) {
	b, _ := newTestBoot(nil)
	before := b.View(80, 24)
	b.Update(tickMsg(time.Now()))
	if b.View(80, 24) == before {
		t.Error("spinner frame should change on tick")
	}
}
