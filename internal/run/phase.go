package run

//go:generate go tool stringer -type=Phase -output=phase_string.go

// Phase is the run state machine. A run moves strictly forward; validation
// failure and an empty mapping table exit early to PhaseDone.
type Phase int

const (
	PhaseUnvalidated Phase = iota
	PhaseValidated
	PhaseMappingBuilt
	PhaseTargetsCollected
	PhaseSubstituted
	PhaseDone
)

// Outcome distinguishes the terminal result of a run. A completed run with
// zero modifications is still OutcomeCompleted; only pre-flight failure and
// an empty table are non-success outcomes.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeValidationFailed
	OutcomeNoMappings
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeValidationFailed:
		return "validation failed"
	case OutcomeNoMappings:
		return "no mappings found"
	default:
		return "unknown"
	}
}
