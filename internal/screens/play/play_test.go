package play

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screens/result"
	"github.com/abhisek/quizcraft/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func twoQuestionQuiz() quiz.Quiz {
	answers := []quiz.Answer{
		{Text: "Stay in", Points: 1},
		{Text: "Coffee with a friend", Points: 2},
		{Text: "Day trip", Points: 3},
		{Text: "Book a flight", Points: 4},
	}
	return quiz.Quiz{
		ID:    "weekend",
		Title: "Your weekend style",
		Questions: []quiz.Question{
			{Text: "Saturday morning?", Answers: answers},
			{Text: "Sunday night?", Answers: answers},
		},
		Results: []quiz.Result{
			{Title: "Homebody", Description: "Cozy.", Threshold: 5},
			{Title: "Adventurer", Description: "Restless.", Threshold: 10},
		},
	}
}

func TestDigitAnswersAndAdvances(t *testing.T) {
	p := New(twoQuestionQuiz())

	_, cmd := p.Update(keyPress('3'))
	if cmd != nil {
		t.Error("first answer should not finish the quiz")
	}
	if p.sess.Score() != 3 || p.sess.Index() != 1 {
		t.Errorf("score=%d index=%d, want 3 and 1", p.sess.Score(), p.sess.Index())
	}
	if !strings.Contains(p.View(80, 24), "Sunday night?") {
		t.Error("view should show the second question")
	}
}

func TestArrowsThenEnter(t *testing.T) {
	p := New(twoQuestionQuiz())

	p.Update(specialKey(tea.KeyDown))
	p.Update(specialKey(tea.KeyDown))
	p.Update(specialKey(tea.KeyEnter))

	if p.sess.Score() != 3 {
		t.Errorf("score = %d, want 3", p.sess.Score())
	}
}

func TestFinishReplacesWithResult(t *testing.T) {
	p := New(twoQuestionQuiz())

	p.Update(keyPress('3'))
	_, cmd := p.Update(keyPress('4'))
	if cmd == nil {
		t.Fatal("expected a command after the last answer")
	}
	if p.sess.Phase() != session.PhaseFinished || p.sess.Score() != 7 {
		t.Fatalf("phase=%v score=%d, want finished and 7", p.sess.Phase(), p.sess.Score())
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	rs, ok := msg.Screen.(*result.ResultScreen)
	if !ok {
		t.Fatalf("expected *result.ResultScreen, got %T", msg.Screen)
	}
	view := rs.View(80, 24)
	if !strings.Contains(view, "Adventurer") || !strings.Contains(view, "7 / 8") {
		t.Errorf("result view wrong:\n%s", view)
	}
}

func TestBackUndoesLastAnswer(t *testing.T) {
	p := New(twoQuestionQuiz())

	// Nothing to undo on the first question, and no hint for it.
	p.Update(specialKey(tea.KeyLeft))
	if p.sess.Index() != 0 {
		t.Fatal("undo on first question should be a no-op")
	}
	for _, h := range p.KeyHints() {
		if h.Description == "Previous" {
			t.Error("Previous hint should be hidden on the first question")
		}
	}

	p.Update(keyPress('2'))
	p.Update(specialKey(tea.KeyLeft))
	if p.sess.Index() != 0 || p.sess.Score() != 0 {
		t.Errorf("after undo: index=%d score=%d, want 0 and 0", p.sess.Index(), p.sess.Score())
	}
}

func TestPreviousHintShownAfterFirstAnswer(t *testing.T) {
	p := New(twoQuestionQuiz())
	p.Update(keyPress('1'))

	found := false
	for _, h := range p.KeyHints() {
		if h.Description == "Previous" {
			found = true
		}
	}
	if !found {
		t.Error("Previous hint should be shown once an answer exists")
	}
}

func TestOutOfRangeDigitIgnored(t *testing.T) {
	p := New(twoQuestionQuiz())
	p.Update(keyPress('9'))
	if p.sess.Index() != 0 {
		t.Error("digit beyond the answer count should be ignored")
	}
}

func TestEmptyQuizGoesStraightToResult(t *testing.T) {
	q := twoQuestionQuiz()
	q.Questions = nil
	p := New(q)

	cmd := p.Init()
	if cmd == nil {
		t.Fatal("expected Init to finish an empty quiz")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
}

func TestTitleIsQuizTitle(t *testing.T) {
	p := New(twoQuestionQuiz())
	if p.Title() != "Your weekend style" {
		t.Errorf("Title = %q", p.Title())
	}
}
