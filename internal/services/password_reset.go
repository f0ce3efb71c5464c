package services

import (
	"context"
	"fmt"
	"log"

	"github.com/agriscan/scanalerts/internal/config"
	"github.com/agriscan/scanalerts/internal/gcp"
	"github.com/agriscan/scanalerts/internal/httpsfn"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/sms"
	"github.com/agriscan/scanalerts/internal/store"
)

const minPasswordLength = 8

// PasswordResetStore is the document-store surface the reset needs.
// *store.Store implements it.
type PasswordResetStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// IdentityStore is the auth-provider surface the reset needs. *gcp.Identity
// implements it.
type IdentityStore interface {
	UIDByEmail(ctx context.Context, email string) (string, error)
	UIDExists(ctx context.Context, uid string) (bool, error)
	SetPassword(ctx context.Context, uid, password string) error
}

// PasswordResetFunction overwrites an account credential for phone-based
// resets. It performs no OTP verification itself: callers reach it only after
// the client flow has verified OTP possession, and every overwrite is logged
// with the target profile and resolved account so that boundary is auditable.
type PasswordResetFunction struct {
	profile  product.Profile
	store    PasswordResetStore
	identity IdentityStore
}

// NewPasswordResetFunction assembles the service from its dependencies.
func NewPasswordResetFunction(profile product.Profile, st PasswordResetStore, identity IdentityStore) *PasswordResetFunction {
	return &PasswordResetFunction{profile: profile, store: st, identity: identity}
}

// NewPasswordReset builds the production service from the environment.
func NewPasswordReset(ctx context.Context) (*PasswordResetFunction, error) {
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
	authClient, err := gcp.NewAuthClient(ctx, app)
	if err != nil {
		return nil, err
	}
	return NewPasswordResetFunction(profile, store.New(fsClient), gcp.NewIdentity(authClient)), nil
}

// Process validates the request, resolves the auth account behind the user's
// phone number and overwrites its password.
func (f *PasswordResetFunction) Process(ctx context.Context, req *models.ResetPasswordRequest) (*models.ResetPasswordResponse, error) {
	if req.UserID == "" || req.NewPassword == "" {
		return nil, httpsfn.Errorf(httpsfn.InvalidArgument, "userId and newPassword are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return nil, httpsfn.Errorf(httpsfn.InvalidArgument, "Password must be at least %d characters", minPasswordLength)
	}

	user, err := f.store.GetUser(ctx, req.UserID)
	if err != nil {
		log.Printf("ERROR loading profile %s: %v", req.UserID, err)
		return nil, httpsfn.Errorf(httpsfn.Internal, "Failed to reset password. Please try again later.")
	}
	if user == nil {
		return nil, httpsfn.Errorf(httpsfn.NotFound, "User not found")
	}
	if user.PhoneNumber == "" {
		return nil, httpsfn.Errorf(httpsfn.NotFound, "User has no phone number on record")
	}

	uid, err := f.resolveUID(ctx, req.UserID, user.PhoneNumber)
	if err != nil {
		log.Printf("ERROR resolving auth account for %s: %v", req.UserID, err)
		return nil, httpsfn.Errorf(httpsfn.Internal, "Failed to reset password. Please try again later.")
	}
	if uid == "" {
		return nil, httpsfn.Errorf(httpsfn.NotFound, "No account found for this user")
	}

	if err := f.identity.SetPassword(ctx, uid, req.NewPassword); err != nil {
		log.Printf("ERROR updating password for %s: %v", req.UserID, err)
		return nil, httpsfn.Errorf(httpsfn.Internal, "Failed to reset password. Please try again later.")
	}

	// Audit line for the externally-verified OTP boundary.
	log.Printf("Password reset for user %s (auth uid %s)", req.UserID, uid)
	return &models.ResetPasswordResponse{Success: true}, nil
}

// resolveUID maps a profile to its auth account. Phone-only accounts register
// under a placeholder email derived from the phone digits; older accounts may
// exist directly under the profile ID.
func (f *PasswordResetFunction) resolveUID(ctx context.Context, userID, phoneNumber string) (string, error) {
	placeholder := fmt.Sprintf("phone_%s@%s", sms.Digits(phoneNumber), f.profile.PlaceholderDomain)
	uid, err := f.identity.UIDByEmail(ctx, placeholder)
	if err != nil {
		return "", err
	}
	if uid != "" {
		return uid, nil
	}

	exists, err := f.identity.UIDExists(ctx, userID)
	if err != nil {
		return "", err
	}
	if exists {
		return userID, nil
	}
	return "", nil
}
