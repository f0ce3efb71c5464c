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

// CompletionAlertStore is the document-store surface the completion alert
// needs. *store.Store implements it.
type CompletionAlertStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	MarkScanRequest(ctx context.Context, requestID, flag string) error
}

// CompletionAlertFunction pushes to the submitting user's device when their
// scan request reaches a terminal review state.
type CompletionAlertFunction struct {
	profile product.Profile
	store   CompletionAlertStore
	pusher  notify.Pusher
}

// NewCompletionAlertFunction assembles the service from its dependencies.
func NewCompletionAlertFunction(profile product.Profile, st CompletionAlertStore, pusher notify.Pusher) *CompletionAlertFunction {
	return &CompletionAlertFunction{profile: profile, store: st, pusher: pusher}
}

// NewCompletionAlert builds the production service from the environment.
func NewCompletionAlert(ctx context.Context) (*CompletionAlertFunction, error) {
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
	return NewCompletionAlertFunction(profile, store.New(fsClient), notify.NewFCMPusher(msgClient)), nil
}

// Process handles a scan request update.
func (f *CompletionAlertFunction) Process(ctx context.Context, change *fsevent.Change) error {
	requestID := change.DocumentID()
	beforeStatus := fsevent.String(change.Before, models.FieldStatus, "")
	afterStatus := fsevent.String(change.After, models.FieldStatus, "")
	handled := fsevent.Bool(change.After, models.FieldUserNotifiedCompleted)

	outcome := transition.CompletionAlert.Classify(beforeStatus, afterStatus, handled)
	if outcome != transition.Eligible {
		return nil
	}

	userID := fsevent.String(change.After, models.FieldUserID,
		fsevent.String(change.Before, models.FieldUserID, ""))
	if userID == "" {
		log.Printf("[Request: %s] Completed with no userId, nothing to notify.", requestID)
		return nil
	}

	user, err := f.store.GetUser(ctx, userID)
	if err != nil {
		log.Printf("[Request: %s] ERROR loading user %s: %v", requestID, userID, err)
		return nil
	}
	// No token or notifications off is an ordinary skip, not a failure. The
	// flag stays unset so a later token registration can still be notified on
	// redelivery.
	if user == nil || user.FCMToken == "" || !user.NotificationsEnabled() {
		log.Printf("[Request: %s] User %s has no deliverable device, skipping push.", requestID, userID)
		return nil
	}

	expertName := fsevent.String(change.After, models.FieldExpertName, f.profile.ReviewerFallback)
	payload := notify.Payload{
		Title: "Your review is ready",
		Body:  fmt.Sprintf(f.profile.CompletionAlertBody, expertName),
		Data: map[string]string{
			"type":       "scan_request_completed",
			"requestId":  requestID,
			"expertName": expertName,
		},
	}

	sent, err := f.pusher.SendToTokens(ctx, []string{user.FCMToken}, payload)
	if err != nil {
		log.Printf("[Request: %s] ERROR pushing completion alert to user %s: %v", requestID, userID, err)
	} else {
		log.Printf("[Request: %s] Completion alert pushed to user %s (%d delivered).", requestID, userID, sent)
	}

	if err := f.store.MarkScanRequest(ctx, requestID, models.FieldUserNotifiedCompleted); err != nil {
		log.Printf("[Request: %s] ERROR marking user notified: %v", requestID, err)
	}
	return nil
}
