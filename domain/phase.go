package domain

// Phase is one step of the meeting lifecycle.
// The only legal sequence is topic-selection → time-voting → preparation →
// scheduled, plus the manual reset edge scheduled → topic-selection.
type Phase string

const (
	PhaseTopicSelection Phase = "topic-selection"
	PhaseTimeVoting     Phase = "time-voting"
	PhasePreparation    Phase = "preparation"
	PhaseScheduled      Phase = "scheduled"
)

// Next returns the phase that follows p in the forward sequence.
// The second return is false for the terminal scheduled phase, which is
// only left through an explicit reset.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhaseTopicSelection:
		return PhaseTimeVoting, true
	case PhaseTimeVoting:
		return PhasePreparation, true
	case PhasePreparation:
		return PhaseScheduled, true
	default:
		return p, false
	}
}

// CanTransition reports whether from → to is one of the defined edges.
func CanTransition(from, to Phase) bool {
	if from == PhaseScheduled && to == PhaseTopicSelection {
		return true
	}
	next, ok := from.Next()
	return ok && next == to
}
