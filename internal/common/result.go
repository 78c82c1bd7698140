package common

import "errors"

// Result is the discriminated outcome shown to the user.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// ResultOf converts an operation error into a Result. Engine errors keep
// their own message; anything else is reported as an internal failure
// without leaking the underlying text.
func ResultOf(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	var e *Error
	if errors.As(err, &e) {
		return Result{Message: e.Message, Kind: e.Kind}
	}
	return Result{Message: "Something went wrong, please try again", Kind: KindInternal}
}
