package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for body and registry operations.
var (
	// ErrInvalidMass indicates a zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidRadius indicates a negative or non-finite radius.
	ErrInvalidRadius = errors.New("dynamo: radius must be non-negative")

	// ErrNotFound indicates a name lookup miss.
	ErrNotFound = errors.New("dynamo: body not found")

	// ErrIndexOutOfRange indicates an index lookup outside [0, len).
	ErrIndexOutOfRange = errors.New("dynamo: body index out of range")

	// ErrDuplicateName indicates a second body registered under an existing name.
	ErrDuplicateName = errors.New("dynamo: duplicate body name")

	// ErrNotInitialized indicates a simulator used before it was bound to bodies.
	ErrNotInitialized = errors.New("dynamo: simulator not initialized")
)

// BodyError wraps an error with the name of the body it concerns.
type BodyError struct {
	Name    string
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %q: %v", e.Name, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
