package services

import (
	"context"
	"fmt"
	"log"

	"github.com/agriscan/scanalerts/internal/config"
	"github.com/agriscan/scanalerts/internal/fsevent"
	"github.com/agriscan/scanalerts/internal/gcp"
	"github.com/agriscan/scanalerts/internal/mail"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/store"
	"github.com/agriscan/scanalerts/internal/transition"
)

// ApprovalAlertStore is the document-store surface the approval alert needs.
// *store.Store implements it.
type ApprovalAlertStore interface {
	MarkUser(ctx context.Context, userID, flag string) error
}

// ApprovalAlertFunction emails a user when their account is approved.
type ApprovalAlertFunction struct {
	profile product.Profile
	store   ApprovalAlertStore
	mailer  mail.Sender
}

// NewApprovalAlertFunction assembles the service from its dependencies.
func NewApprovalAlertFunction(profile product.Profile, st ApprovalAlertStore, mailer mail.Sender) *ApprovalAlertFunction {
	return &ApprovalAlertFunction{profile: profile, store: st, mailer: mailer}
}

// NewApprovalAlert builds the production service from the environment.
func NewApprovalAlert(ctx context.Context) (*ApprovalAlertFunction, error) {
	cfg, err := config.LoadBase()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	profile, err := product.ByName(cfg.Product)
	if err != nil {
		return nil, err
	}
	smtpCfg, err := config.LoadSMTP()
	if err != nil {
		return nil, fmt.Errorf("failed to load SMTP configuration: %w", err)
	}
	fsClient, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	return NewApprovalAlertFunction(profile, store.New(fsClient), mail.NewSMTPSender(smtpCfg)), nil
}

// Process handles a user profile update. The marker is only set after a
// confirmed send: unlike the push paths, a failed approval email should be
// retried by the next delivery of this event.
func (f *ApprovalAlertFunction) Process(ctx context.Context, change *fsevent.Change) error {
	userID := change.DocumentID()
	beforeStatus := fsevent.String(change.Before, models.FieldStatus, "")
	afterStatus := fsevent.String(change.After, models.FieldStatus, "")
	handled := fsevent.Bool(change.After, models.FieldEmailNotifiedApproval)

	outcome := transition.ApprovalAlert.Classify(beforeStatus, afterStatus, handled)
	if outcome != transition.Eligible {
		return nil
	}

	email := fsevent.String(change.After, models.FieldEmail, "")
	if email == "" {
		log.Printf("[User: %s] Approved but has no email, skipping notification.", userID)
		return nil
	}
	userName := fsevent.String(change.After, models.FieldFullName, "User")

	body, err := mail.RenderApproval(mail.ApprovalEmail{
		UserName: userName,
		Product:  f.profile.DisplayName,
	})
	if err != nil {
		log.Printf("[User: %s] ERROR rendering approval email: %v", userID, err)
		return nil
	}

	result := f.mailer.Send(email, f.profile.ApprovalSubject(), body)
	if !result.Success {
		log.Printf("[User: %s] ERROR sending approval email to %s: %v", userID, email, result.Err)
		return nil
	}
	log.Printf("[User: %s] Approval email sent to %s.", userID, email)

	if err := f.store.MarkUser(ctx, userID, models.FieldEmailNotifiedApproval); err != nil {
		log.Printf("[User: %s] ERROR marking approval notified: %v", userID, err)
	}
	return nil
}
