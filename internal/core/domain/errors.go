package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a measurement failed validation.
	// Use errors.As with *InvalidInputError to obtain the reason.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates a persisted history record is malformed.
	// Stores skip such records instead of failing the whole load.
	ErrInvalidRecord = errors.New("invalid history record")

	// ErrNotEnoughData indicates a trend needs more measurements.
	ErrNotEnoughData = errors.New("not enough data")

	// ErrUnsupportedBackend indicates an unknown history storage backend.
	ErrUnsupportedBackend = errors.New("unsupported history backend")

	// ErrInvalidSetting indicates a settings value is out of range or unknown.
	ErrInvalidSetting = errors.New("invalid setting")
)

// InvalidInputError carries the human-readable reason a measurement
// was rejected. It matches ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Reason string
}

// Error returns the rejection reason.
func (e *InvalidInputError) Error() string {
	return e.Reason
}

// Unwrap returns ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// ReasonOf returns the rejection reason if err is an *InvalidInputError,
// or the empty string otherwise.
func ReasonOf(err error) string {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Reason
	}
	return ""
}
