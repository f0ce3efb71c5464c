package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/services"
)

func completionChange(requestID, beforeStatus, afterStatus, userID string, notified bool) (*firestoredata.Document, *firestoredata.Document) {
	before := doc("scan_requests", requestID, map[string]*firestoredata.Value{
		"status": sv(beforeStatus),
		"userId": sv(userID),
	})
	after := doc("scan_requests", requestID, map[string]*firestoredata.Value{
		"status":                sv(afterStatus),
		"userId":                sv(userID),
		"expertName":            sv("Dr. Cruz"),
		"userNotifiedCompleted": bv(notified),
	})
	return before, after
}

func TestCompletionAlertPushesAndMarks(t *testing.T) {
	st := &fakeStore{users: map[string]*models.User{
		"farmer1": {FCMToken: "tok-1"},
	}}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before, after := completionChange("req1", "pending_review", "completed", "farmer1", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(pusher.tokenSends) != 1 || pusher.tokenSends[0][0] != "tok-1" {
		t.Fatalf("tokenSends = %v, want single send to tok-1", pusher.tokenSends)
	}
	if !strings.Contains(pusher.payloads[0].Body, "Dr. Cruz") {
		t.Fatalf("push body %q missing expert name", pusher.payloads[0].Body)
	}
	if len(st.scanMarks) != 1 || st.scanMarks[0] != "req1/userNotifiedCompleted" {
		t.Fatalf("scanMarks = %v, want req1/userNotifiedCompleted", st.scanMarks)
	}
}

func TestCompletionAlertNoOpOnUnchangedStatus(t *testing.T) {
	st := &fakeStore{users: map[string]*models.User{"farmer1": {FCMToken: "tok-1"}}}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before, after := completionChange("req2", "reviewed", "reviewed", "farmer1", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pusher.tokenSends) != 0 || len(st.scanMarks) != 0 {
		t.Fatal("unchanged status must not dispatch")
	}
}

func TestCompletionAlertSkipsWithoutTokenAndLeavesFlagUnset(t *testing.T) {
	st := &fakeStore{users: map[string]*models.User{"farmer1": {}}}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before, after := completionChange("req3", "pending_review", "completed", "farmer1", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pusher.tokenSends) != 0 {
		t.Fatal("no push expected without a device token")
	}
	if len(st.scanMarks) != 0 {
		t.Fatal("flag must stay unset so a later token registration can be notified")
	}
}

func TestCompletionAlertSkipsWhenNotificationsDisabled(t *testing.T) {
	st := &fakeStore{users: map[string]*models.User{
		"farmer1": {FCMToken: "tok-1", EnableNotifications: boolPtr(false)},
	}}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before, after := completionChange("req4", "pending_review", "completed", "farmer1", false)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pusher.tokenSends) != 0 {
		t.Fatal("no push expected when the user disabled notifications")
	}
}

func TestCompletionAlertSkipsWhenAlreadyNotified(t *testing.T) {
	st := &fakeStore{users: map[string]*models.User{"farmer1": {FCMToken: "tok-1"}}}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before, after := completionChange("req5", "pending_review", "completed", "farmer1", true)
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pusher.tokenSends) != 0 || len(st.scanMarks) != 0 {
		t.Fatal("already-notified request must not dispatch again")
	}
}

func TestCompletionAlertNoOpWithoutUserID(t *testing.T) {
	st := &fakeStore{}
	pusher := &fakePusher{}
	fn := services.NewCompletionAlertFunction(product.MangoSense, st, pusher)

	before := doc("scan_requests", "req6", map[string]*firestoredata.Value{"status": sv("pending_review")})
	after := doc("scan_requests", "req6", map[string]*firestoredata.Value{"status": sv("completed")})
	if err := fn.Process(context.Background(), change(before, after)); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(pusher.tokenSends) != 0 {
		t.Fatal("no push expected without a userId")
	}
}
