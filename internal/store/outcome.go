package store

// Outcome is the result of a mutation. It separates "nothing with that id"
// from "the transition was not allowed", which a bare boolean cannot do.
// Storage failures travel on the error return instead.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeInvalidTransition
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidTransition:
		return "invalid_transition"
	default:
		return "unknown"
	}
}
