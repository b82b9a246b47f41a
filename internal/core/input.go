package core

// Action is a semantic input intent, decoupled from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // move cursor up
	ActionDown             // move cursor down
	ActionLeft             // move cursor left
	ActionRight            // move cursor right
	ActionNextPiece        // select the next deck slot
	ActionPrevPiece        // select the previous deck slot
	ActionSlot1            // select deck slot 1 directly
	ActionSlot2
	ActionSlot3
	ActionDrop    // drop the selected piece on the cursor tile
	ActionRestart // restart after game over or level completion
	ActionPause
	ActionQuit
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
	case ActionNextPiece:
		return "NextPiece"
	case ActionPrevPiece:
		return "PrevPiece"
	case ActionSlot1:
		return "Slot1"
	case ActionSlot2:
		return "Slot2"
	case ActionSlot3:
		return "Slot3"
	case ActionDrop:
		return "Drop"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SlotIndex returns the zero-based deck slot for a slot action.
func (a Action) SlotIndex() (int, bool) {
	switch a {
	case ActionSlot1:
		return 0, true
	case ActionSlot2:
		return 1, true
	case ActionSlot3:
		return 2, true
	default:
		return 0, false
	}
}

// InputFrame holds the actions triggered during one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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

// Empty returns true if no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
