package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Accelerate key.Binding
	Decelerate key.Binding
	Confirm    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "turn left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "turn right"),
		),
		Accelerate: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "swim"),
		),
		Decelerate: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "brake"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Accelerate, k.Confirm, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Accelerate, k.Decelerate},
		{k.Confirm, k.Screenshot, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionTurnLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionTurnRight, false
	case key.Matches(msg, km.keys.Accelerate):
		return core.ActionAccelerate, false
	case key.Matches(msg, km.keys.Decelerate):
		return core.ActionDecelerate, false
	case key.Matches(msg, km.keys.Confirm):
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// HoldTracker turns key presses into held actions. Terminals report presses
// and auto-repeats but never releases, so a key counts as held until it has
// been silent for holdTicks ticks. Confirm is one-shot.
type HoldTracker struct {
	holdTicks int
	remaining map[core.Action]int
	frame     core.InputFrame
}

// opposite pairs cancel each other: pressing one releases the other.
var opposite = map[core.Action]core.Action{
	core.ActionTurnLeft:   core.ActionTurnRight,
	core.ActionTurnRight:  core.ActionTurnLeft,
	core.ActionAccelerate: core.ActionDecelerate,
	core.ActionDecelerate: core.ActionAccelerate,
}

// NewHoldTracker creates a tracker that keeps keys held for holdTicks ticks.
func NewHoldTracker(holdTicks int) *HoldTracker {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HoldTracker{
		holdTicks: holdTicks,
		remaining: make(map[core.Action]int),
		frame:     core.NewInputFrame(),
	}
}

// Press records a key press or repeat.
func (h *HoldTracker) Press(a core.Action) {
	switch a {
	case core.ActionNone, core.ActionQuit:
		return
	case core.ActionConfirm:
		h.remaining[a] = 1
		return
	}
	if o, ok := opposite[a]; ok {
		delete(h.remaining, o)
	}
	h.remaining[a] = h.holdTicks
}

// Frame builds the input for the next tick and ages every held key by one
// tick. The returned frame is reused by the next call.
func (h *HoldTracker) Frame() core.InputFrame {
	h.frame.Clear()
	for a, n := range h.remaining {
		h.frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return h.frame
}

// Release drops every held key.
func (h *HoldTracker) Release() {
	clear(h.remaining)
}
