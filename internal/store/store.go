// Package store wraps Firestore access for the notification handlers.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agriscan/scanalerts/internal/models"
)

const (
	scanRequestsCollection  = "scan_requests"
	usersCollection         = "users"
	notificationsCollection = "notifications"
)

// Store provides the document-store operations the services need.
type Store struct {
	client *firestore.Client
}

// New wraps a Firestore client.
func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

// MarkScanRequest merge-sets a boolean idempotency flag on a scan request.
// The merge write leaves every other field untouched.
func (s *Store) MarkScanRequest(ctx context.Context, requestID, flag string) error {
	_, err := s.client.Collection(scanRequestsCollection).Doc(requestID).
		Set(ctx, map[string]any{flag: true}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("mark scan request %s %s: %w", requestID, flag, err)
	}
	return nil
}

// MarkUser merge-sets a boolean idempotency flag on a user profile.
func (s *Store) MarkUser(ctx context.Context, userID, flag string) error {
	_, err := s.client.Collection(usersCollection).Doc(userID).
		Set(ctx, map[string]any{flag: true}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("mark user %s %s: %w", userID, flag, err)
	}
	return nil
}

// GetUser fetches a user profile. A missing document returns (nil, nil):
// absent users are an expected condition on every caller's path, not a
// failure.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", userID, err)
	}
	return &user, nil
}

// UserIDsByRole returns the IDs of every user holding one of the roles.
func (s *Store) UserIDsByRole(ctx context.Context, roles []string) ([]string, error) {
	docs, err := s.client.Collection(usersCollection).
		Where("role", "in", roles).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query users by role: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}

// AddNotifications writes one in-app notification record per entry,
// concurrently. Each record gets a generated document ID.
func (s *Store) AddNotifications(ctx context.Context, records []models.Notification) error {
	eg, gctx := errgroup.WithContext(ctx)
	for _, rec := range records {
		eg.Go(func() error {
			_, _, err := s.client.Collection(notificationsCollection).Add(gctx, rec)
			if err != nil {
				return fmt.Errorf("add notification for user %s: %w", rec.UserID, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
