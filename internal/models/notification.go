package models

import "time"

// Notification is the in-app notification record written for every recipient
// of an expert alert (OinkCheck only). Immutable once created except for the
// read receipt, which the client writes.
type Notification struct {
	UserID    string            `firestore:"userId"`
	Type      string            `firestore:"type"`
	Title     string            `firestore:"title"`
	Body      string            `firestore:"body"`
	Data      map[string]string `firestore:"data,omitempty"`
	IsRead    bool              `firestore:"isRead"`
	CreatedAt time.Time         `firestore:"createdAt,serverTimestamp"`
	ReadAt    *time.Time        `firestore:"readAt,omitempty"`
}
