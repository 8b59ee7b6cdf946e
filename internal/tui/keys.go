package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionPrimary
	ActionOpenBuild
	ActionOpenTools
	ActionOpenConfig
	ActionShare
	ActionNextTab
	ActionPrevTab
	ActionCloseOutput
	ActionToggleHelp
	ActionHistoryBack
	ActionHistoryForward
	ActionPageDown
	ActionPageUp
	ActionToggleSideBySide
)

// KeyHandler maps global keys to actions. Keys it does not know are left
// for the editor.
type KeyHandler struct{}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action.
func (k *KeyHandler) Handle(msg tea.KeyMsg) KeyAction {
	return k.keyToAction(msg.String())
}

func (k *KeyHandler) keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c":
		return ActionQuit
	case "ctrl+r", "ctrl+enter":
		return ActionPrimary
	case "ctrl+b":
		return ActionOpenBuild
	case "ctrl+t":
		return ActionOpenTools
	case "ctrl+o":
		return ActionOpenConfig
	case "ctrl+s":
		return ActionShare
	case "tab":
		return ActionNextTab
	case "shift+tab":
		return ActionPrevTab
	case "esc":
		return ActionCloseOutput
	case "f1":
		return ActionToggleHelp
	case "alt+left":
		return ActionHistoryBack
	case "alt+right":
		return ActionHistoryForward
	case "pgdown":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "f2":
		return ActionToggleSideBySide
	default:
		return ActionNone
	}
}
