package interp

// State is the Execution State (spec §3.5).
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateWaitingForResponse
	StatePaused
	StateStepping
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateWaitingForResponse:
		return "WaitingForResponse"
	case StatePaused:
		return "Paused"
	case StateStepping:
		return "Stepping"
	case StateComplete:
		return "Complete"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
