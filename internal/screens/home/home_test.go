package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/generate"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screens/creator"
	"github.com/abhisek/quizcraft/internal/screens/play"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleQuiz(title string) quiz.Quiz {
	return quiz.Quiz{
		Title: title,
		Questions: []quiz.Question{{Text: "Tea or coffee?", Answers: []quiz.Answer{
			{Text: "Tea", Points: 1}, {Text: "Coffee", Points: 2},
		}}},
		Results: []quiz.Result{{Title: "Calm", Description: "Steady.", Threshold: 2}},
	}
}

func testCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Insert("cities", sampleQuiz("Which city?"))
	c.Insert("pets", sampleQuiz("Which pet?"))
	return c
}

func newHome(c *catalog.Catalog) *HomeScreen {
	return New(c, generate.Unavailable{}, false)
}

func TestMenuListsQuizzesThenActions(t *testing.T) {
	h := newHome(testCatalog())

	var labels []string
	for _, item := range h.menu.Items {
		labels = append(labels, item.Label)
	}
	want := []string{"Which city?", "Which pet?", labelCreate, labelExit}
	if strings.Join(labels, "|") != strings.Join(want, "|") {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestSelectingQuizPushesPlay(t *testing.T) {
	h := newHome(testCatalog())
	h.Update(specialKey(tea.KeyDown))

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	p, ok := push.Screen.(*play.PlayScreen)
	if !ok {
		t.Fatalf("pushed %T, want *play.PlayScreen", push.Screen)
	}
	if p.Title() != "Which pet?" {
		t.Errorf("title = %q", p.Title())
	}
}

func TestCreateQuizPushesCreator(t *testing.T) {
	h := newHome(testCatalog())
	h.menu.Select(2)

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*creator.CreatorScreen); !ok {
		t.Errorf("pushed %T, want creator", push.Screen)
	}
}

func TestExitQuits(t *testing.T) {
	h := newHome(testCatalog())
	h.menu.Select(3)

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should quit")
	}
}

func TestPublishedRefreshesAndSelects(t *testing.T) {
	c := testCatalog()
	h := newHome(c)

	c.Insert("custom_1", sampleQuiz("Which dessert?"))
	h.Update(creator.PublishedMsg{ID: "custom_1", Title: "Which dessert?"})

	if len(h.menu.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(h.menu.Items))
	}
	if h.menu.Items[h.menu.Selected].Label != "Which dessert?" {
		t.Errorf("selected = %q", h.menu.Items[h.menu.Selected].Label)
	}
	if !strings.Contains(h.View(120, 40), "Published") {
		t.Error("view should show the publish notice")
	}

	h.Update(specialKey(tea.KeyUp))
	if h.notice != "" {
		t.Error("notice should clear on the next key")
	}
}

func TestEmptyCatalogStillOffersCreate(t *testing.T) {
	h := newHome(catalog.New())
	if h.menu.Items[h.menu.Selected].Label != labelCreate {
		t.Errorf("selected = %q, want create", h.menu.Items[h.menu.Selected].Label)
	}
	view := h.View(80, 24)
	if !strings.Contains(view, labelCreate) {
		t.Error("view should render the create entry")
	}
}
