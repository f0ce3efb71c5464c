package models

// Firestore field names shared between the event decoders, the classifier
// wiring and the idempotency marker writes.
const (
	FieldStatus                = "status"
	FieldUserID                = "userId"
	FieldUserName              = "userName"
	FieldExpertName            = "expertName"
	FieldEmail                 = "email"
	FieldFullName              = "fullName"
	FieldExpertsNotified       = "expertsNotified"
	FieldUserNotifiedCompleted = "userNotifiedCompleted"
	FieldEmailNotifiedApproval = "emailNotifiedApproval"
)
