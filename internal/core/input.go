package core

import "slices"

// Action is a key press translated into what the player meant.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // menu navigation
	ActionDown             // drop one row / menu navigation
	ActionLeft             // shift capsule left
	ActionRight            // shift capsule right
	ActionRotateCW         // rotate clockwise
	ActionRotateCCW        // rotate counter-clockwise
	ActionConfirm          // menu selection
	ActionBack             // return to the menu
	ActionRestart          // new game after game over
	ActionQuit             // leave the program or session
	ActionPause            // toggle pause
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the input collected between two simulation steps,
// in the order the keys arrived. Repeats are kept: left, rotate, left
// inside one frame replays as three moves.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has reports whether a was pressed during the frame.
func (f InputFrame) Has(a Action) bool {
	return slices.Contains(f.Actions, a)
}

// Clear empties the frame, keeping its storage.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone returns a frame that shares no storage with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: slices.Clone(f.Actions)}
}
