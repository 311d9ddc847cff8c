package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a player intent derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionFlap
	ActionRestart
	ActionMute
	ActionQuit
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return ActionQuit
	case " ", "up", "w", "k":
		return ActionFlap
	case "r":
		return ActionRestart
	case "m":
		return ActionMute
	}
	return ActionNone
}
