package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey("a"), core.ActionLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey("w"), core.ActionRotate, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey(%s) action = %v, expected %v", tt.name, action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%s) quit = %v, expected %v", tt.name, quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("a"), &frame) {
		t.Error("a should not quit")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("frame should contain ActionLeft")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := map[string]struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		"k":     {runeKey("k"), MenuActionUp},
		"down":  {tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		"enter": {tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		"esc":   {tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		"tab":   {tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		"q":     {runeKey("q"), MenuActionQuit},
		"x":     {runeKey("x"), MenuActionNone},
	}

	for name, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", name, got, tt.expected)
		}
	}
}
