package services

import (
	"context"
	"fmt"
	"log"

	"github.com/agriscan/scanalerts/internal/config"
	"github.com/agriscan/scanalerts/internal/fsevent"
	"github.com/agriscan/scanalerts/internal/gcp"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/notify"
	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/store"
	"github.com/agriscan/scanalerts/internal/transition"
)

// ExpertAlertStore is the document-store surface the expert alert needs.
// *store.Store implements it.
type ExpertAlertStore interface {
	MarkScanRequest(ctx context.Context, requestID, flag string) error
	UserIDsByRole(ctx context.Context, roles []string) ([]string, error)
	AddNotifications(ctx context.Context, records []models.Notification) error
}

// ExpertAlertFunction broadcasts to the expert topic when a scan request
// enters a pending state, and for variants with in-app notifications writes
// one record per expert.
type ExpertAlertFunction struct {
	profile product.Profile
	store   ExpertAlertStore
	pusher  notify.Pusher
}

// NewExpertAlertFunction assembles the service from its dependencies.
func NewExpertAlertFunction(profile product.Profile, st ExpertAlertStore, pusher notify.Pusher) *ExpertAlertFunction {
	return &ExpertAlertFunction{profile: profile, store: st, pusher: pusher}
}

// NewExpertAlert builds the production service from the environment.
func NewExpertAlert(ctx context.Context) (*ExpertAlertFunction, error) {
	cfg, err := config.LoadBase()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	profile, err := product.ByName(cfg.Product)
	if err != nil {
		return nil, err
	}
	app, err := gcp.NewApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	fsClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	msgClient, err := gcp.NewMessagingClient(ctx, app)
	if err != nil {
		return nil, err
	}
	log.Printf("Expert alert initialized for product %s (topic %q)", profile.Name, profile.ExpertTopic)
	return NewExpertAlertFunction(profile, store.New(fsClient), notify.NewFCMPusher(msgClient)), nil
}

// ProcessCreate handles a scan request created directly in a pending state.
// A created document with no status field counts as pending.
func (f *ExpertAlertFunction) ProcessCreate(ctx context.Context, change *fsevent.Change) error {
	status := fsevent.String(change.After, models.FieldStatus, models.StatusPending)
	handled := fsevent.Bool(change.After, models.FieldExpertsNotified)
	outcome := transition.ExpertAlertOnCreate.Classify("", status, handled)
	if outcome != transition.Eligible {
		log.Printf("[Request: %s] Create with status %q: %s, skipping.", change.DocumentID(), status, outcome)
		return nil
	}
	userName := fsevent.String(change.After, models.FieldUserName, f.profile.SubmitterFallback)
	return f.dispatch(ctx, change.DocumentID(), userName)
}

// ProcessUpdate handles a scan request whose status moved into a pending
// state.
func (f *ExpertAlertFunction) ProcessUpdate(ctx context.Context, change *fsevent.Change) error {
	beforeStatus := fsevent.String(change.Before, models.FieldStatus, "")
	afterStatus := fsevent.String(change.After, models.FieldStatus, "")
	handled := fsevent.Bool(change.After, models.FieldExpertsNotified)
	outcome := transition.ExpertAlertOnUpdate.Classify(beforeStatus, afterStatus, handled)
	if outcome != transition.Eligible {
		return nil
	}
	userName := fsevent.String(change.After, models.FieldUserName,
		fsevent.String(change.Before, models.FieldUserName, f.profile.SubmitterFallback))
	return f.dispatch(ctx, change.DocumentID(), userName)
}

func (f *ExpertAlertFunction) dispatch(ctx context.Context, requestID, userName string) error {
	payload := notify.Payload{
		Title: "New review request",
		Body:  fmt.Sprintf(f.profile.ExpertAlertBody, userName),
		Data: map[string]string{
			"type":      "scan_request_created",
			"requestId": requestID,
			"userName":  userName,
		},
	}

	if err := f.pusher.SendToTopic(ctx, f.profile.ExpertTopic, payload); err != nil {
		// Non-fatal: the broadcast is best-effort and must not trigger a
		// redelivery storm.
		log.Printf("[Request: %s] ERROR broadcasting to topic %q: %v", requestID, f.profile.ExpertTopic, err)
	} else {
		log.Printf("[Request: %s] Expert broadcast sent to topic %q.", requestID, f.profile.ExpertTopic)
	}

	if f.profile.RecordsNotifications() {
		f.recordForExperts(ctx, requestID, payload)
	}

	if err := f.store.MarkScanRequest(ctx, requestID, models.FieldExpertsNotified); err != nil {
		// Swallowed: a lost marker write only risks one duplicate alert.
		log.Printf("[Request: %s] ERROR marking experts notified: %v", requestID, err)
	}
	return nil
}

// recordForExperts writes one in-app notification per expert-role user,
// regardless of whether the push broadcast succeeded.
func (f *ExpertAlertFunction) recordForExperts(ctx context.Context, requestID string, payload notify.Payload) {
	ids, err := f.store.UserIDsByRole(ctx, f.profile.ExpertRoles)
	if err != nil {
		log.Printf("[Request: %s] ERROR resolving expert recipients: %v", requestID, err)
		return
	}
	records := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		records = append(records, models.Notification{
			UserID: id,
			Type:   "scan_request_created",
			Title:  payload.Title,
			Body:   payload.Body,
			Data:   payload.Data,
		})
	}
	if err := f.store.AddNotifications(ctx, records); err != nil {
		log.Printf("[Request: %s] ERROR writing notification records: %v", requestID, err)
		return
	}
	log.Printf("[Request: %s] Wrote %d notification records.", requestID, len(records))
}
