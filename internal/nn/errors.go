package nn

import "errors"

// Engine errors. Callers match them with errors.Is.
var (
	// ErrConfig reports an incomplete or invalid network configuration.
	ErrConfig = errors.New("invalid network configuration")

	// ErrDimension reports an input or target vector of the wrong length.
	ErrDimension = errors.New("dimension mismatch")

	// ErrNumeric reports a non-finite gradient. Parameters are left untouched.
	ErrNumeric = errors.New("non-finite gradient")

	// ErrInvalidModel reports a weight file that does not describe a valid network.
	ErrInvalidModel = errors.New("invalid model file")
)
