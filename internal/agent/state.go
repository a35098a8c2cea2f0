package agent

// State is a step of the per-round state machine.
type State int32

const (
	AwaitingInput State = iota
	Deciding
	ToolsRequested
	Invoking
	Finalizing
	Answering
)

var stateNames = [...]string{
	AwaitingInput:  "awaiting_input",
	Deciding:       "deciding",
	ToolsRequested: "tools_requested",
	Invoking:       "invoking",
	Finalizing:     "finalizing",
	Answering:      "answering",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
