package core

// Action is a semantic game action, abstracted from physical keys and mouse buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move crosshair up
	ActionDown           // S, J, Down arrow - move crosshair down
	ActionLeft           // A, H, Left arrow - move crosshair left
	ActionRight          // D, L, Right arrow - move crosshair right
	ActionTap            // Space, Enter - pop at crosshair
	ActionBack           // B, Escape - dismiss summary / back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - leave the program
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionTap:
		return "Tap"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// CellPoint is a screen cell coordinate, used for pointer taps.
type CellPoint struct {
	X, Y int
}

// InputFrame collects everything the player did between two ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Taps lists pointer clicks in arrival order, in screen cells.
	Taps []CellPoint
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddTap records a pointer click at screen cell (x, y).
func (f *InputFrame) AddTap(x, y int) {
	f.Taps = append(f.Taps, CellPoint{X: x, Y: y})
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Taps = f.Taps[:0]
}

// Clone creates an independent copy of this frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Taps) > 0 {
		clone.Taps = append([]CellPoint(nil), f.Taps...)
	}
	return clone
}
