package dispatch

// OutcomeKind enumerates the mutually exclusive terminal states of a
// dispatch. Exactly one outcome is produced per call.
type OutcomeKind int

const (
	// OutcomeSuccess - the action completed and produced text
	OutcomeSuccess OutcomeKind = iota
	// OutcomeChoice - the transport should present the temperature
	// sensor choice instead of plain text
	OutcomeChoice
	// OutcomeTimeout - the deadline elapsed; the in-flight work was abandoned
	OutcomeTimeout
	// OutcomeFailure - the action failed with a categorized error
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeChoice:
		return "choice"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeFailure:
		return "failure"
	}
	return "unknown"
}

// Outcome is the terminal result of one dispatch. Text is set for
// OutcomeSuccess, Err for OutcomeFailure.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Err  error
}
