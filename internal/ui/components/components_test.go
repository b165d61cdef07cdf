package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}

	m.Select(2)
	if m.Selected != 1 {
		t.Error("Select should ignore disabled items")
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(key("enter"))
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestChoicePick(t *testing.T) {
	c := NewChoice([]string{"one", "two", "three"})

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"enter", 0, true},
		{"2", 1, true},
		{"3", 2, true},
		{"4", 0, false},
		{"0", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := c.Pick(tt.key)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Pick(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	c, _ = c.Update(key("down"))
	if got, _ := c.Pick("enter"); got != 2 {
		t.Errorf("cursor pick = %d, want 2 (clamped)", got)
	}
	if !strings.Contains(c.View(), "3)  three") {
		t.Errorf("view missing numbered option:\n%s", c.View())
	}
}

func TestNumericTextInputDropsLetters(t *testing.T) {
	in := NewTextInput("Threshold", "", true, 6)
	in.Focus()

	for _, k := range []string{"1", "x", "2"} {
		in, _ = in.Update(key(k))
	}
	if in.Value() != "12" {
		t.Errorf("value = %q, want %q", in.Value(), "12")
	}
}

func TestProgressBarPercentLabel(t *testing.T) {
	p := NewProgressBar("", 0.5, true, 20)
	if !strings.Contains(p.View(), "50%") {
		t.Errorf("percent label missing: %q", p.View())
	}
}
