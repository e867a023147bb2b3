package bookings

import (
	"errors"
	"net/http"
)

// ErrorKind tags every error the booking core surfaces. Callers switch on
// the kind, not on concrete types.
type ErrorKind string

const (
	// Business outcomes, deterministic, 4xx-equivalent.
	KindSlotUnavailable        ErrorKind = "SLOT_UNAVAILABLE"
	KindIntentNotFound         ErrorKind = "INTENT_NOT_FOUND"
	KindBookingNotFound        ErrorKind = "BOOKING_NOT_FOUND"
	KindIntentExpired          ErrorKind = "INTENT_EXPIRED"
	KindIntentAlreadyFinalized ErrorKind = "INTENT_ALREADY_FINALIZED"
	KindInvalidStateTransition ErrorKind = "INVALID_STATE_TRANSITION"
	KindInvalidRequest         ErrorKind = "INVALID_REQUEST"

	// Infrastructure outcomes, 5xx-equivalent.
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	KindPricingFailure   ErrorKind = "PRICING_FAILURE"
)

// Error carries a kind plus a message and optional cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates an error of the given kind wrapping a cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the kind of a booking-core error; ok is false for
// foreign errors.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Retryable reports whether the caller may usefully retry.
func (k ErrorKind) Retryable() bool {
	return k == KindStoreUnavailable
}

// HTTPStatus maps the kind to its client-facing status code.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindSlotUnavailable, KindIntentAlreadyFinalized, KindInvalidStateTransition:
		return http.StatusConflict
	case KindIntentNotFound, KindBookingNotFound:
		return http.StatusNotFound
	case KindIntentExpired:
		return http.StatusGone
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case KindPricingFailure:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
