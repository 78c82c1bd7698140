package models

import "time"

// Session is the single authenticated session of this client. UserID is a
// lookup key into the user collection, not an embedded copy.
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	CompanyName  string    `json:"companyName,omitempty"`
	BusinessType string    `json:"businessType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	RememberMe   bool      `json:"rememberMe"`
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
