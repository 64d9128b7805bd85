package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup.
var (
	// ErrInvalidRadius indicates a body with a non-positive radius.
	ErrInvalidRadius = errors.New("dynamo: body radius must be positive")

	// ErrInvalidWorld indicates a world rectangle with no area.
	ErrInvalidWorld = errors.New("dynamo: world width and height must be positive")

	// ErrInvalidParams indicates physics constants outside their valid range.
	ErrInvalidParams = errors.New("dynamo: physics parameter out of valid bounds")

	// ErrNoBodies indicates a run configured with zero bodies.
	ErrNoBodies = errors.New("dynamo: body count must be positive")

	// ErrInitFailed indicates the rendering subsystem could not be created.
	ErrInitFailed = errors.New("dynamo: renderer initialisation failed")
)

// InitError wraps an initialisation failure with the stage that failed
// (window, surface, renderer).
type InitError struct {
	Stage   string
	Wrapped error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Stage, e.Wrapped)
}

func (e *InitError) Unwrap() error {
	return e.Wrapped
}

// NewInitError returns an InitError for stage wrapping ErrInitFailed.
func NewInitError(stage string, cause error) *InitError {
	if cause == nil {
		cause = ErrInitFailed
	} else {
		cause = fmt.Errorf("%w: %v", ErrInitFailed, cause)
	}
	return &InitError{Stage: stage, Wrapped: cause}
}
