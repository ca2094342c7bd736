package core

// Action represents a semantic player action, abstracted from key presses and
// HTTP requests alike.
type Action int

const (
	ActionNone    Action = iota
	ActionSubmit         // Enter / POST rounds - play the typed consumption
	ActionRestart        // R key / POST restart - start over
	ActionBack           // Escape - leave the game screen
	ActionQuit           // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSubmit:
		return "Submit"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is one discrete input delivered to a session.
// Consumption is only meaningful for ActionSubmit.
type Event struct {
	Action      Action
	Consumption int
}

// Submit builds a submit event for the given consumption.
func Submit(consumption int) Event {
	return Event{Action: ActionSubmit, Consumption: consumption}
}

// Restart builds a restart event.
func Restart() Event {
	return Event{Action: ActionRestart}
}
