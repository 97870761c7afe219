package port

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes reported by the campaign
// use case. Callers dispatch on the kind, never on message text.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotAuthenticated
	KindNoStoreFound
	KindValidationFailed
	KindNotFound
	KindForbidden
	KindInvalidState
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindNoStoreFound:
		return "no_store_found"
	case KindValidationFailed:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "unexpected"
	}
}

// FieldError describes one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by every CampaignUseCase operation on failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the kind sentinels below work
// with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrNotAuthenticated = &Error{Kind: KindNotAuthenticated, Message: "Not authenticated"}
	ErrNoStoreFound     = &Error{Kind: KindNoStoreFound, Message: "No store found"}
	ErrValidation       = &Error{Kind: KindValidationFailed, Message: "Validation failed"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "Campaign not found"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "You do not have permission to access this campaign"}
	ErrInvalidState     = &Error{Kind: KindInvalidState, Message: "Campaign is not in draft status"}
	ErrUnexpected       = &Error{Kind: KindUnexpected, Message: "Unexpected failure"}
)

// NewError builds an error of the given kind.
func NewError(kind ErrorKind, msg string, details ...FieldError) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

// Unexpected reduces an arbitrary fault to an Unexpected error that keeps
// the underlying message. Errors that already carry a kind pass through.
func Unexpected(msg string, err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// KindOf returns the kind of err. Errors not produced by this package are
// Unexpected.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnexpected
}
