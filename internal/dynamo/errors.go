package dynamo

import "errors"

// Domain errors for propagation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the propagation became numerically unstable.
	ErrUnstable = errors.New("dynamo: propagation unstable (state diverged)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the propagation was interrupted.
	ErrContextCanceled = errors.New("dynamo: propagation canceled by context")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// PropagationError wraps an error with propagation context.
type PropagationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *PropagationError) Error() string {
	return e.Wrapped.Error()
}

func (e *PropagationError) Unwrap() error {
	return e.Wrapped
}
