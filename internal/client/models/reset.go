package models

import "time"

// PasswordResetRequest is the single outstanding reset of this client.
type PasswordResetRequest struct {
	Email     string    `json:"email"`
	OTP       string    `json:"otp"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code can no longer be used at now.
func (r PasswordResetRequest) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
