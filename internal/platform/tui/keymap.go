package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pillbox/internal/core"
)

// bind expands one action over several key names.
func bind[A comparable](m map[string]A, a A, keys ...string) {
	for _, k := range keys {
		m[k] = a
	}
}

func defaultGameKeys() map[string]core.Action {
	m := make(map[string]core.Action)
	bind(m, core.ActionQuit, "ctrl+c", "q")
	bind(m, core.ActionLeft, "a", "left", "h")
	bind(m, core.ActionRight, "d", "right", "l")
	bind(m, core.ActionDown, "s", "down", "j", " ")
	bind(m, core.ActionRotateCW, "w", "up", "x", "k")
	bind(m, core.ActionRotateCCW, "z")
	bind(m, core.ActionConfirm, "enter")
	bind(m, core.ActionBack, "b")
	bind(m, core.ActionPause, "p", "esc")
	bind(m, core.ActionRestart, "r")
	return m
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

func defaultMenuKeys() map[string]MenuAction {
	m := make(map[string]MenuAction)
	bind(m, MenuActionQuit, "ctrl+c", "q")
	bind(m, MenuActionUp, "w", "up", "k")
	bind(m, MenuActionDown, "s", "down", "j")
	bind(m, MenuActionLeft, "a", "left", "h")
	bind(m, MenuActionRight, "d", "right", "l")
	bind(m, MenuActionSelect, "enter", " ")
	bind(m, MenuActionBack, "b", "esc")
	bind(m, MenuActionScoreboard, "tab")
	return m
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: defaultGameKeys(), menu: defaultMenuKeys()}
}

// MapKey returns the game action for msg (ActionNone if unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.game[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame queues the action for msg on frame.
// Quit is reported instead of queued.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
