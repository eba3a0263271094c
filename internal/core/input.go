package core

// Action represents a semantic operator action, abstracted from physical key
// presses. The viewer maps keys to actions; Apply maps actions to the engine.
type Action int

const (
	ActionNone      Action = iota
	ActionStart            // Space - start a round
	ActionSkip             // Enter - resolve the running round instantly
	ActionSpeedUp          // + - double the animation speed
	ActionSpeedDown        // - - halve the animation speed
	ActionBlocks           // B - cycle the purchased piece count
	ActionProbUp           // ] - raise the target probability
	ActionProbDown         // [ - lower the target probability
	ActionDebug            // D - toggle debug logging and the debug panel
	ActionReseed           // S - reseed from system entropy
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionSkip:
		return "Skip"
	case ActionSpeedUp:
		return "SpeedUp"
	case ActionSpeedDown:
		return "SpeedDown"
	case ActionBlocks:
		return "Blocks"
	case ActionProbUp:
		return "ProbUp"
	case ActionProbDown:
		return "ProbDown"
	case ActionDebug:
		return "Debug"
	case ActionReseed:
		return "Reseed"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one viewer tick.
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
