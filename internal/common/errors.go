// Package common defines the error taxonomy shared by every engine
// component, the Result value rendered by UI layers, and small random and
// memory helpers. Callers should use errors.Is to match sentinel values and
// KindOf to branch on the error class.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies an expected engine failure.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindExpired      Kind = "expired"
	KindCorruptState Kind = "corrupt_state"

	// KindInternal is reported for failures outside the taxonomy, such as an
	// unavailable store.
	KindInternal Kind = "internal"
)

// Error is an expected business failure. Sentinel values below are compared
// by identity, so wrapping with %w keeps errors.Is working.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	parent *Error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the general sentinel e refines, if any.
func (e *Error) Unwrap() error {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// refine derives a sentinel with its own message that still matches parent
// under errors.Is.
func refine(parent *Error, code, msg string) *Error {
	return &Error{Kind: parent.Kind, Code: code, Message: msg, parent: parent}
}

// Identity registry.
var (
	ErrInvalidEmail    = newError(KindValidation, "invalid_email", "Please enter a valid email address")
	ErrInvalidPhone    = newError(KindValidation, "invalid_phone", "Please enter a valid phone number")
	ErrInvalidFullName = newError(KindValidation, "invalid_full_name", "Please enter your full name")
	ErrWeakPassword    = newError(KindValidation, "weak_password", "Password must be at least 8 characters with letters and numbers")
	ErrMissingBusiness = newError(KindValidation, "missing_business_type", "Please select a business type")
	ErrDuplicateEmail  = newError(KindConflict, "duplicate_email", "An account with this email already exists")
	ErrDuplicatePhone  = newError(KindConflict, "duplicate_phone", "An account with this phone number already exists")
	ErrUserNotFound    = newError(KindNotFound, "user_not_found", "No account found with this email")
)

// Authentication and sessions.
var (
	ErrEmailNotFound     = newError(KindNotFound, "email_not_found", "Email not found")
	ErrIncorrectPassword = newError(KindValidation, "incorrect_password", "Incorrect password")
	ErrNoSession         = newError(KindNotFound, "no_session", "Please log in to continue")
	ErrSessionExpired    = newError(KindExpired, "session_expired", "Your session has expired, please log in again")
)

// Password reset workflow.
var (
	ErrNoActiveRequest = newError(KindNotFound, "no_active_request", "No active reset request, please request a new code")
	ErrEmailMismatch   = newError(KindValidation, "email_mismatch", "Email does not match the reset request")
	ErrOTPExpired      = newError(KindExpired, "otp_expired", "The code has expired, please request a new one")
	ErrInvalidOTP      = newError(KindValidation, "invalid_otp", "Invalid code, please try again")
)

// Cart and orders.
var (
	ErrInvalidCartItem    = newError(KindValidation, "invalid_cart_item", "Cart item must have an id, a non-negative price and a positive quantity")
	ErrCartLimit          = newError(KindValidation, "cart_limit", "That quantity is more than the cart can hold")
	ErrEmptyCart          = newError(KindValidation, "empty_cart", "Your cart is empty")
	ErrOrderNotFound      = newError(KindNotFound, "order_not_found", "Order not found")
	ErrInvalidTransition  = newError(KindValidation, "invalid_status_transition", "Order status cannot change that way")
	ErrUnknownOrderStatus = newError(KindValidation, "unknown_order_status", "Unknown order status")
)

// Subscriber registry.
var (
	ErrInvalidFormat     = newError(KindValidation, "invalid_format", "Please enter a valid email or phone number")
	ErrAlreadySubscribed = newError(KindConflict, "already_subscribed", "This contact is already subscribed")

	ErrInvalidSubscriberEmail = refine(ErrInvalidFormat, "invalid_subscriber_email", "Please enter a valid email address")
	ErrInvalidSubscriberPhone = refine(ErrInvalidFormat, "invalid_subscriber_phone", "Please enter a valid phone number")
	ErrEmailSubscribed        = refine(ErrAlreadySubscribed, "email_subscribed", "This email is already subscribed!")
	ErrPhoneSubscribed        = refine(ErrAlreadySubscribed, "phone_subscribed", "This phone number is already subscribed!")
)

// ErrCorruptState marks a stored document that could not be decoded.
var ErrCorruptState = newError(KindCorruptState, "corrupt_state", "Stored data is corrupt")

// KindOf reports the Kind of the first *Error in err's chain, or
// KindInternal when there is none. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Corrupt wraps cause as ErrCorruptState for the given store key.
func Corrupt(key string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorruptState, key, cause)
}
