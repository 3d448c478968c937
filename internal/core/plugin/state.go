package plugin

// State is a step of a single hook invocation
type State int

const (
	StateLocated State = iota
	StateLoaded
	StateContractValidated
	StateInvoked
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLocated:
		return "located"
	case StateLoaded:
		return "loaded"
	case StateContractValidated:
		return "contract-validated"
	case StateInvoked:
		return "invoked"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true once the invocation has finished either way
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}
