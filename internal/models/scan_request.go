package models

// Scan request lifecycle statuses. A request sits in one of the pending
// states until an expert picks it up, then moves to a terminal review state.
const (
	StatusPending       = "pending"
	StatusPendingReview = "pending_review"
	StatusCompleted     = "completed"
	StatusReviewed      = "reviewed"
)

// ScanRequest is the Firestore record for a single scan submitted for expert
// review. The two *Notified flags are monotonic: once set they are never
// cleared, so a request that re-enters a pending state after completion will
// not alert experts a second time.
type ScanRequest struct {
	Status               string `firestore:"status,omitempty"`
	UserID               string `firestore:"userId,omitempty"`
	UserName             string `firestore:"userName,omitempty"`
	ExpertName           string `firestore:"expertName,omitempty"`
	ExpertsNotified      bool   `firestore:"expertsNotified,omitempty"`
	UserNotifiedComplete bool   `firestore:"userNotifiedCompleted,omitempty"`
}

// IsPendingStatus reports whether s is one of the states that should alert
// experts.
func IsPendingStatus(s string) bool {
	return s == StatusPending || s == StatusPendingReview
}

// IsTerminalStatus reports whether s is one of the states that should alert
// the submitting user.
func IsTerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusReviewed
}
