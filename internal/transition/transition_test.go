package transition_test

import (
	"testing"

	"github.com/agriscan/scanalerts/internal/transition"
)

func TestExpertAlertOnCreate(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		handled bool
		want    transition.Outcome
	}{
		{"pending unhandled", "pending", false, transition.Eligible},
		{"pending_review unhandled", "pending_review", false, transition.Eligible},
		{"pending handled", "pending", true, transition.AlreadyHandled},
		{"completed", "completed", false, transition.NoTransition},
		{"empty status", "", false, transition.NoTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transition.ExpertAlertOnCreate.Classify("", tt.status, tt.handled)
			if got != tt.want {
				t.Fatalf("Classify(%q, handled=%v) = %v, want %v", tt.status, tt.handled, got, tt.want)
			}
		})
	}
}

func TestUpdateRulesRequireStatusChange(t *testing.T) {
	rules := map[string]transition.Rule{
		"expert":     transition.ExpertAlertOnUpdate,
		"completion": transition.CompletionAlert,
		"approval":   transition.ApprovalAlert,
	}
	for name, rule := range rules {
		for _, status := range rule.TargetStatuses {
			if got := rule.Classify(status, status, false); got != transition.NoTransition {
				t.Errorf("%s: same-status %q classified %v, want NoTransition", name, status, got)
			}
		}
	}
}

func TestHandledFlagSuppressesRegardlessOfStatus(t *testing.T) {
	for _, status := range []string{"pending", "pending_review"} {
		got := transition.ExpertAlertOnUpdate.Classify("completed", status, true)
		if got != transition.AlreadyHandled {
			t.Fatalf("status %q with flag set classified %v, want AlreadyHandled", status, got)
		}
	}
}

func TestCompletionAlert(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		handled       bool
		want          transition.Outcome
	}{
		{"into completed", "pending_review", "completed", false, transition.Eligible},
		{"into reviewed", "pending_review", "reviewed", false, transition.Eligible},
		{"already notified", "pending_review", "completed", true, transition.AlreadyHandled},
		{"unrelated edit", "completed", "completed", false, transition.NoTransition},
		{"back to pending", "completed", "pending", false, transition.NoTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transition.CompletionAlert.Classify(tt.before, tt.after, tt.handled)
			if got != tt.want {
				t.Fatalf("Classify(%q→%q, handled=%v) = %v, want %v", tt.before, tt.after, tt.handled, got, tt.want)
			}
		})
	}
}

func TestApprovalAlert(t *testing.T) {
	if got := transition.ApprovalAlert.Classify("pending", "active", false); got != transition.Eligible {
		t.Fatalf("pending→active = %v, want Eligible", got)
	}
	if got := transition.ApprovalAlert.Classify("pending", "suspended", false); got != transition.NoTransition {
		t.Fatalf("pending→suspended = %v, want NoTransition", got)
	}
	if got := transition.ApprovalAlert.Classify("suspended", "active", true); got != transition.AlreadyHandled {
		t.Fatalf("suspended→active handled = %v, want AlreadyHandled", got)
	}
}
