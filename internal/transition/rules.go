package transition

import "github.com/agriscan/scanalerts/internal/models"

// The four production rules. Kept here rather than in the services so the
// whole at-most-once surface is reviewable in one place.

// ExpertAlertOnCreate fires when a request is created already in a pending
// state.
var ExpertAlertOnCreate = Rule{
	TargetStatuses: []string{models.StatusPending, models.StatusPendingReview},
}

// ExpertAlertOnUpdate fires when a request's status moves into a pending
// state.
var ExpertAlertOnUpdate = Rule{
	TargetStatuses: []string{models.StatusPending, models.StatusPendingReview},
	RequireChange:  true,
}

// CompletionAlert fires when a request's status moves into a terminal review
// state.
var CompletionAlert = Rule{
	TargetStatuses: []string{models.StatusCompleted, models.StatusReviewed},
	RequireChange:  true,
}

// ApprovalAlert fires when a user account moves to active.
var ApprovalAlert = Rule{
	TargetStatuses: []string{models.UserStatusActive},
	RequireChange:  true,
}
