// Package transition decides whether a pair of document snapshots represents
// a notify-worthy state change. Every rule pairs a target-status set with an
// already-handled flag, so dispatch is at most once per flag cycle even under
// at-least-once trigger delivery.
package transition

// Outcome is the classification of a before/after snapshot pair.
type Outcome int

const (
	// NoTransition means the change is not notify-worthy.
	NoTransition Outcome = iota
	// Eligible means a notify-worthy transition occurred and has not been
	// handled yet.
	Eligible
	// AlreadyHandled means the transition occurred but its idempotency flag
	// is already set.
	AlreadyHandled
)

func (o Outcome) String() string {
	switch o {
	case Eligible:
		return "eligible"
	case AlreadyHandled:
		return "already_handled"
	default:
		return "no_transition"
	}
}

// Rule describes one trigger's eligibility conditions.
type Rule struct {
	// TargetStatuses are the after-statuses that make the change
	// notify-worthy.
	TargetStatuses []string
	// RequireChange additionally demands before.status != after.status.
	// Creation-triggered rules leave it false; update-triggered rules set it
	// so edits to unrelated fields while already in a target status do not
	// re-fire.
	RequireChange bool
}

// Classify applies the rule to a snapshot pair. handled is the current value
// of the trigger's idempotency flag on the after snapshot.
func (r Rule) Classify(beforeStatus, afterStatus string, handled bool) Outcome {
	if r.RequireChange && beforeStatus == afterStatus {
		return NoTransition
	}
	if !r.targets(afterStatus) {
		return NoTransition
	}
	if handled {
		return AlreadyHandled
	}
	return Eligible
}

func (r Rule) targets(status string) bool {
	for _, s := range r.TargetStatuses {
		if s == status {
			return true
		}
	}
	return false
}
