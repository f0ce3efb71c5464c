package models

// User account statuses.
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User is the Firestore profile record for an app user.
// EnableNotifications is a pointer because absence means enabled: only an
// explicit false opts the user out.
type User struct {
	Status              string `firestore:"status,omitempty"`
	Email               string `firestore:"email,omitempty"`
	FullName            string `firestore:"fullName,omitempty"`
	PhoneNumber         string `firestore:"phoneNumber,omitempty"`
	FCMToken            string `firestore:"fcmToken,omitempty"`
	EnableNotifications *bool  `firestore:"enableNotifications"`
	Role                string `firestore:"role,omitempty"`
	EmailNotifiedActive bool   `firestore:"emailNotifiedApproval,omitempty"`
}

// NotificationsEnabled reports whether push delivery is allowed for this
// user.
func (u *User) NotificationsEnabled() bool {
	return u.EnableNotifications == nil || *u.EnableNotifications
}
