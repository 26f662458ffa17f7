package core

// Action is a semantic player intent, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Move the cursor up
	ActionDown           // Move the cursor down
	ActionLeft           // Move the cursor left
	ActionRight          // Move the cursor right
	ActionConfirm        // Select or swap the gem under the cursor
	ActionHint           // Highlight a legal move
	ActionShuffle        // Reshuffle the board
	ActionPause          // Pause or resume
	ActionRestart        // Start a new game after game over
	ActionBack           // Drop the selection or leave to the menu
	ActionQuit           // Exit the game
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionHint:    "Hint",
	ActionShuffle: "Shuffle",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the input of one simulation tick: the actions
// triggered and at most one pointer click in screen coordinates.
type InputFrame struct {
	Actions map[Action]bool

	clicked        bool
	clickX, clickY int
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
	return f.Actions[a]
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && !f.clicked
}

// SetClick records a pointer press at screen cell (x, y).
// A later click in the same frame replaces an earlier one.
func (f *InputFrame) SetClick(x, y int) {
	f.clicked, f.clickX, f.clickY = true, x, y
}

// Click returns the pointer press of this frame, if any.
func (f InputFrame) Click() (x, y int, ok bool) {
	return f.clickX, f.clickY, f.clicked
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.clicked = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
