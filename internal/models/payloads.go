package models

// These structs define the JSON payloads for the callable HTTPS functions.
// The client sends the callable envelope {"data": <request>} and receives
// {"result": <response>}.

// SendOTPRequest is the input for the send-otp function. The OTP itself is
// generated and verified by the caller's flow; this function only delivers it.
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// SendOTPResponse is the output of the send-otp function.
type SendOTPResponse struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"messageSid"`
}

// ResetPasswordRequest is the input for the reset-password function.
type ResetPasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// ResetPasswordResponse is the output of the reset-password function.
type ResetPasswordResponse struct {
	Success bool `json:"success"`
}
