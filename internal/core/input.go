package core

// Action is a semantic player intent, decoupled from the physical key that
// produced it.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // shift piece left
	ActionRight              // shift piece right
	ActionDown               // soft drop
	ActionRotate             // rotate clockwise
	ActionConfirm            // confirm a menu choice
	ActionBack               // leave a stopped run
	ActionRestart            // start a new run
	ActionQuit               // exit the program or session
	ActionPause              // toggle pause
	ActionFocusLost          // terminal lost focus
	ActionFocusGained        // terminal regained focus
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Down", "Rotate", "Confirm",
	"Back", "Restart", "Quit", "Pause", "FocusLost", "FocusGained",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame. Unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}
