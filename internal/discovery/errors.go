package discovery

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a discovery error
type ErrorType int

const (
	// ErrTypeInitialization indicates the engine could not start a session
	ErrTypeInitialization ErrorType = iota
	// ErrTypeInvalidState indicates an operation on a closed Finder
	ErrTypeInvalidState
	// ErrTypeTimeout indicates no sources appeared within the wait budget
	ErrTypeTimeout
	// ErrTypeEngine indicates the engine failed while reporting sources
	ErrTypeEngine
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInitialization:
		return "Initialization Error"
	case ErrTypeInvalidState:
		return "Invalid State"
	case ErrTypeTimeout:
		return "Discovery Timeout"
	case ErrTypeEngine:
		return "Engine Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every operation in this package.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Sentinels for errors.Is. They match any *Error of the same Type.
var (
	ErrInitialization = &Error{Type: ErrTypeInitialization}
	ErrInvalidState   = &Error{Type: ErrTypeInvalidState}
	ErrTimeout        = &Error{Type: ErrTypeTimeout}
	ErrEngine         = &Error{Type: ErrTypeEngine}
)

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" && e.Err == nil {
		return e.Type.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

func newInitializationError(err error) *Error {
	return &Error{
		Type:    ErrTypeInitialization,
		Message: "failed to start discovery session",
		Err:     err,
	}
}

func newInvalidStateError(op string) *Error {
	return &Error{
		Type:    ErrTypeInvalidState,
		Message: fmt.Sprintf("%s called on a closed finder", op),
	}
}

func newTimeoutError(wait fmt.Stringer) *Error {
	return &Error{
		Type:    ErrTypeTimeout,
		Message: fmt.Sprintf("no sources were found within %s", wait),
	}
}

func newEngineError(err error) *Error {
	return &Error{
		Type:    ErrTypeEngine,
		Message: "failed to get current sources",
		Err:     err,
	}
}

// IsTimeout reports whether err is a discovery timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInvalidState reports whether err came from using a closed Finder.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
