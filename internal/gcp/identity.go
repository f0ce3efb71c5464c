package gcp

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Identity adapts the Firebase Auth admin client to the narrow surface the
// password-reset service needs.
type Identity struct {
	client *auth.Client
}

// NewIdentity wraps an Auth admin client.
func NewIdentity(client *auth.Client) *Identity {
	return &Identity{client: client}
}

// UIDByEmail resolves an account by email. A missing account returns ("",
// nil): placeholder-email lookups miss routinely and the caller falls back.
func (i *Identity) UIDByEmail(ctx context.Context, email string) (string, error) {
	record, err := i.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get account by email: %w", err)
	}
	return record.UID, nil
}

// UIDExists reports whether an account with this UID exists.
func (i *Identity) UIDExists(ctx context.Context, uid string) (bool, error) {
	_, err := i.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get account %s: %w", uid, err)
	}
	return true, nil
}

// SetPassword overwrites the account's credential.
func (i *Identity) SetPassword(ctx context.Context, uid, password string) error {
	update := (&auth.UserToUpdate{}).Password(password)
	if _, err := i.client.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("update account %s password: %w", uid, err)
	}
	return nil
}
