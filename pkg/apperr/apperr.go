// Package apperr defines the application error taxonomy.
//
// Every error surfaced by a service belongs to one of four kinds:
//
//	Validation — malformed or unresolvable input (missing user, empty items)
//	Business   — a rule was violated (insufficient stock, gate rejection)
//	NotFound   — the addressed entity does not exist
//	Integrity  — the persistence layer refused a write (FK still referenced)
//
// Controllers map kinds to HTTP status codes; the CanUpdateStatus probe
// converts Business errors into a (false, reason) result instead of failing.
package apperr

import "errors"

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindBusiness
	KindNotFound
	KindIntegrity
)

// Error is an application error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation-kind error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Business creates a business-rule-violation error.
func Business(msg string) *Error {
	return &Error{Kind: KindBusiness, Message: msg}
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Integrity creates an integrity error, wrapping the storage-layer cause.
func Integrity(msg string, cause error) *Error {
	return &Error{Kind: KindIntegrity, Message: msg, Err: cause}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsBusiness reports whether err is a business-rule violation.
func IsBusiness(err error) bool { return KindOf(err) == KindBusiness }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsIntegrity reports whether err is an integrity error.
func IsIntegrity(err error) bool { return KindOf(err) == KindIntegrity }
