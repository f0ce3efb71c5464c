package services_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"

	"github.com/agriscan/scanalerts/internal/fsevent"
	"github.com/agriscan/scanalerts/internal/mail"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/notify"
)

// Snapshot builders.

func doc(collection, id string, fields map[string]*firestoredata.Value) *firestoredata.Document {
	return &firestoredata.Document{
		Name:   fmt.Sprintf("projects/test/databases/(default)/documents/%s/%s", collection, id),
		Fields: fields,
	}
}

func sv(s string) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_StringValue{StringValue: s}}
}

func bv(b bool) *firestoredata.Value {
	return &firestoredata.Value{ValueType: &firestoredata.Value_BooleanValue{BooleanValue: b}}
}

func change(before, after *firestoredata.Document) *fsevent.Change {
	return &fsevent.Change{Before: before, After: after}
}

// fakeStore implements every store interface the services consume.
type fakeStore struct {
	users         map[string]*models.User
	expertIDs     []string
	scanMarks     []string // "requestID/flag"
	userMarks     []string // "userID/flag"
	notifications []models.Notification
	markErr       error
}

func (f *fakeStore) MarkScanRequest(_ context.Context, requestID, flag string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.scanMarks = append(f.scanMarks, requestID+"/"+flag)
	return nil
}

func (f *fakeStore) MarkUser(_ context.Context, userID, flag string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.userMarks = append(f.userMarks, userID+"/"+flag)
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeStore) UserIDsByRole(_ context.Context, _ []string) ([]string, error) {
	return f.expertIDs, nil
}

func (f *fakeStore) AddNotifications(_ context.Context, records []models.Notification) error {
	f.notifications = append(f.notifications, records...)
	return nil
}

// fakePusher records push attempts.
type fakePusher struct {
	topics     []string
	payloads   []notify.Payload
	tokenSends [][]string
	sendErr    error
}

func (f *fakePusher) SendToTopic(_ context.Context, topic string, p notify.Payload) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, p)
	return nil
}

func (f *fakePusher) SendToTokens(_ context.Context, tokens []string, p notify.Payload) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.tokenSends = append(f.tokenSends, tokens)
	f.payloads = append(f.payloads, p)
	return len(tokens), nil
}

// fakeMailer records email attempts.
type fakeMailer struct {
	to       []string
	subjects []string
	bodies   []string
	fail     bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) mail.SendResult {
	if f.fail {
		return mail.SendResult{Err: errors.New("relay refused")}
	}
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, htmlBody)
	return mail.SendResult{Success: true}
}

// fakeSMS records SMS attempts.
type fakeSMS struct {
	to      []string
	bodies  []string
	sendErr error
}

func (f *fakeSMS) Send(to, body string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.to = append(f.to, to)
	f.bodies = append(f.bodies, body)
	return "SM" + fmt.Sprint(len(f.to)), nil
}

// fakeIdentity is an in-memory auth store.
type fakeIdentity struct {
	byEmail   map[string]string
	uids      map[string]bool
	passwords map[string]string
}

func (f *fakeIdentity) UIDByEmail(_ context.Context, email string) (string, error) {
	return f.byEmail[email], nil
}

func (f *fakeIdentity) UIDExists(_ context.Context, uid string) (bool, error) {
	return f.uids[uid], nil
}

func (f *fakeIdentity) SetPassword(_ context.Context, uid, password string) error {
	if f.passwords == nil {
		f.passwords = map[string]string{}
	}
	f.passwords[uid] = password
	return nil
}

func boolPtr(b bool) *bool { return &b }
