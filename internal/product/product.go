// Package product holds the per-variant configuration that distinguishes the
// MangoSense and OinkCheck deployments. Everything else in the repo is shared;
// the six notification handlers are the same code instantiated with one of
// these profiles.
package product

import "fmt"

// Profile parameterizes one app variant.
type Profile struct {
	// Name is the PRODUCT env value and the placeholder-email domain stem.
	Name string
	// DisplayName appears in user-facing text.
	DisplayName string
	// ExpertTopic is the FCM topic all expert devices subscribe to.
	ExpertTopic string
	// ExpertRoles, when non-empty, enables in-app notification-record fan-out
	// to every user holding one of these roles.
	ExpertRoles []string
	// SubmitterFallback and ReviewerFallback replace missing display names in
	// notification text.
	SubmitterFallback string
	ReviewerFallback  string
	// ExpertAlertBody and CompletionAlertBody are fmt templates taking the
	// submitter / reviewer name.
	ExpertAlertBody     string
	CompletionAlertBody string
	// PlaceholderDomain is the synthetic email domain for phone-only accounts.
	PlaceholderDomain string
	// CountryCode is prefixed to national phone numbers (no leading +).
	CountryCode string
}

// MangoSense is the mango leaf disease detection variant.
var MangoSense = Profile{
	Name:                "mangosense",
	DisplayName:         "MangoSense",
	ExpertTopic:         "experts",
	SubmitterFallback:   "A farmer",
	ReviewerFallback:    "An expert",
	ExpertAlertBody:     "%s submitted a leaf scan for expert review.",
	CompletionAlertBody: "%s has completed the analysis of your leaf scan.",
	PlaceholderDomain:   "mangosense.local",
	CountryCode:         "63",
}

// OinkCheck is the pig disease detection variant. Unlike MangoSense it also
// writes an in-app notification record per expert recipient.
var OinkCheck = Profile{
	Name:                "oinkcheck",
	DisplayName:         "OinkCheck",
	ExpertTopic:         "experts",
	ExpertRoles:         []string{"expert", "head_veterinarian"},
	SubmitterFallback:   "A farmer",
	ReviewerFallback:    "An expert",
	ExpertAlertBody:     "%s submitted a pig scan for veterinarian review.",
	CompletionAlertBody: "%s has completed the analysis of your pig scan.",
	PlaceholderDomain:   "oinkcheck.local",
	CountryCode:         "63",
}

// ByName resolves a PRODUCT env value to a profile.
func ByName(name string) (Profile, error) {
	switch name {
	case MangoSense.Name:
		return MangoSense, nil
	case OinkCheck.Name:
		return OinkCheck, nil
	}
	return Profile{}, fmt.Errorf("unknown product %q (want %q or %q)", name, MangoSense.Name, OinkCheck.Name)
}

// RecordsNotifications reports whether this variant persists in-app
// notification records for expert alerts.
func (p Profile) RecordsNotifications() bool {
	return len(p.ExpertRoles) > 0
}

// ApprovalSubject is the approval email subject line.
func (p Profile) ApprovalSubject() string {
	return fmt.Sprintf("🎉 Welcome to %s - Your Account is Approved!", p.DisplayName)
}
