package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeyPicks(t *testing.T) {
	mc := NewMultiChoice([]string{"water", "fire", "earth", "wind"}, 2)

	mc, _ = mc.Update(key('3'))
	if !mc.Submitted || mc.ChosenIndex != 2 {
		t.Fatalf("expected option 3 submitted, got submitted=%v chosen=%d", mc.Submitted, mc.ChosenIndex)
	}
	if !mc.IsCorrect() {
		t.Error("expected correct pick")
	}
}

func TestMultiChoice_OutOfRangeNumberIgnored(t *testing.T) {
	mc := NewMultiChoice([]string{"water", "fire"}, 0)

	mc, _ = mc.Update(key('4'))
	if mc.Submitted {
		t.Error("expected no submission for a missing option")
	}
}

func TestMultiChoice_ArrowsThenEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"water", "fire", "earth"}, 1)

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if mc.ChosenIndex != 1 {
		t.Fatalf("expected index 1, got %d", mc.ChosenIndex)
	}

	mc.Reset()
	if mc.Submitted || mc.ChosenIndex != -1 {
		t.Error("expected reset to clear the pick")
	}
}
