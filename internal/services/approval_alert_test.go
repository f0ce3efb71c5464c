package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/services"
)

func approvalChange(userID, beforeStatus, afterStatus string, notified bool) (*firestoredata.Document, *firestoredata.Document) {
	before := doc("users", userID, map[string]*firestoredata.Value{
		"status": sv(beforeStatus),
	})
	after := doc("users", userID, map[string]*firestoredata.Value{
		"status":                sv(afterStatus),
		"email":                 sv("maria@example.com"),
		"fullName":              sv("Maria Santos"),
		"emailNotifiedApproval": bv(notified),
	})
	return before, after
}

func TestApprovalAlertSendsEmailAndMarks(t *testing.T) {
	st := &fakeStore{}
	mailer := &fakeMailer{}
	fn := services.NewApprovalAlertFunction(product.MangoSense, st, mailer)

	before, after := approvalChange("user1", "pending", "active", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(mailer.to) != 1 || mailer.to[0] != "maria@example.com" {
		t.Fatalf("mail recipients = %v, want maria@example.com", mailer.to)
	}
	if !strings.Contains(mailer.subjects[0], "Approved") {
		t.Fatalf("subject %q missing Approved", mailer.subjects[0])
	}
	if !strings.Contains(mailer.bodies[0], "Maria Santos") {
		t.Fatalf("body missing user name")
	}
	if len(st.userMarks) != 1 || st.userMarks[0] != "user1/emailNotifiedApproval" {
		t.Fatalf("userMarks = %v, want user1/emailNotifiedApproval", st.userMarks)
	}
}

func TestApprovalAlertSecondUpdateIsNoOp(t *testing.T) {
	st := &fakeStore{}
	mailer := &fakeMailer{}
	fn := services.NewApprovalAlertFunction(product.MangoSense, st, mailer)

	// The first pass set the flag; the replayed update carries it.
	before, after := approvalChange("user1", "pending", "active", true)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(mailer.to) != 0 {
		t.Fatal("already-notified user must not be emailed again")
	}
}

func TestApprovalAlertIgnoresOtherStatusChanges(t *testing.T) {
	st := &fakeStore{}
	mailer := &fakeMailer{}
	fn := services.NewApprovalAlertFunction(product.MangoSense, st, mailer)

	before, after := approvalChange("user1", "pending", "suspended", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(mailer.to) != 0 {
		t.Fatal("non-approval transition must not send email")
	}
}

func TestApprovalAlertSkipsUsersWithoutEmail(t *testing.T) {
	st := &fakeStore{}
	mailer := &fakeMailer{}
	fn := services.NewApprovalAlertFunction(product.MangoSense, st, mailer)

	before := doc("users", "user2", map[string]*firestoredata.Value{"status": sv("pending")})
	after := doc("users", "user2", map[string]*firestoredata.Value{"status": sv("active")})
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(mailer.to) != 0 || len(st.userMarks) != 0 {
		t.Fatal("no email and no marker expected without an address")
	}
}

func TestApprovalAlertFailedSendLeavesFlagUnset(t *testing.T) {
	st := &fakeStore{}
	mailer := &fakeMailer{fail: true}
	fn := services.NewApprovalAlertFunction(product.MangoSense, st, mailer)

	before, after := approvalChange("user3", "pending", "active", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(st.userMarks) != 0 {
		t.Fatal("marker must stay unset after a failed send so redelivery retries")
	}
}
