package domain

import "errors"

var (
	// ErrValidation is returned when a value is outside its allowed domain.
	ErrValidation = errors.New("validation failed")
	// ErrMalformedEvent is returned for callback tokens that cannot be parsed.
	ErrMalformedEvent = errors.New("malformed event")
	// ErrStaleTransition is returned when an event does not match the current dialogue state.
	ErrStaleTransition = errors.New("stale transition")
	// ErrStoreUnavailable is returned when the state store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsRecoverable reports whether err is handled locally by acknowledging the event.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrMalformedEvent) ||
		errors.Is(err, ErrStaleTransition)
}
