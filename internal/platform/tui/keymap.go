package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type actionBinding struct {
	action core.Action
	key.Binding
}

type menuBinding struct {
	action MenuAction
	key.Binding
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Bindings are checked in order; the first match wins.
type KeyMapper struct {
	game []actionBinding
	menu []menuBinding
}

// NewKeyMapper creates a key mapper with the default bindings: WASD, arrows
// and vim keys all steer the piece.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: []actionBinding{
			{core.ActionQuit, key.NewBinding(key.WithKeys("q", "ctrl+c"))},
			{core.ActionLeft, key.NewBinding(key.WithKeys("a", "left", "h"))},
			{core.ActionRight, key.NewBinding(key.WithKeys("d", "right", "l"))},
			{core.ActionDown, key.NewBinding(key.WithKeys("s", "down", "j"))},
			{core.ActionRotate, key.NewBinding(key.WithKeys("w", "up", "k", " "))},
			{core.ActionConfirm, key.NewBinding(key.WithKeys("enter"))},
			{core.ActionBack, key.NewBinding(key.WithKeys("b", "esc"))},
			{core.ActionPause, key.NewBinding(key.WithKeys("p"))},
			{core.ActionRestart, key.NewBinding(key.WithKeys("r"))},
		},
		menu: []menuBinding{
			{MenuActionQuit, key.NewBinding(key.WithKeys("q", "ctrl+c"))},
			{MenuActionUp, key.NewBinding(key.WithKeys("w", "up", "k"))},
			{MenuActionDown, key.NewBinding(key.WithKeys("s", "down", "j"))},
			{MenuActionSelect, key.NewBinding(key.WithKeys("enter", " "))},
			{MenuActionBack, key.NewBinding(key.WithKeys("b", "esc"))},
			{MenuActionScoreboard, key.NewBinding(key.WithKeys("tab"))},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.Binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.Binding) {
			return b.action
		}
	}
	return MenuActionNone
}
