package navigate

import (
	"errors"
	"fmt"
)

// Sentinel errors for dispatch outcomes. Use errors.Is against the values
// returned by Router.Dispatch.
var (
	// ErrNotFound is reported when no route is registered for a path.
	ErrNotFound = errors.New("navigate: no route for path")

	// ErrPreconditionFailed is reported when a precondition redirected.
	ErrPreconditionFailed = errors.New("navigate: precondition failed")

	// ErrRedirectLoop is reported when a redirect revisits a path, with the
	// same query parameters, already in the current redirect chain, or the
	// chain exceeds the configured maximum length.
	ErrRedirectLoop = errors.New("navigate: redirect loop")

	// ErrOperationFailed is reported when a route's operation returned an
	// error or panicked.
	ErrOperationFailed = errors.New("navigate: operation failed")

	// ErrUnknownOperation is returned by LoadManifest when a route names an
	// operation that was not supplied.
	ErrUnknownOperation = errors.New("navigate: unknown operation")
)

// NotFoundError reports a dispatch to a path with no registered route.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("navigate: no route for %q", e.Path) }

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PreconditionError reports a precondition that redirected a dispatch.
type PreconditionError struct {
	// ID is the precondition that failed.
	ID string

	// Path is the navigated path the precondition rejected.
	Path string

	// Redirect is the path the precondition returned instead.
	Redirect string

	// Err is the outcome of dispatching Redirect, nil if it succeeded.
	Err error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("navigate: precondition %q redirected %q to %q", e.ID, e.Path, e.Redirect)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrPreconditionFailed.
func (e *PreconditionError) Is(target error) bool { return target == ErrPreconditionFailed }

func (e *PreconditionError) Unwrap() error { return e.Err }

// OperationError reports a route operation that returned an error or
// panicked.
type OperationError struct {
	Path string
	Err  error

	// Panic holds the recovered value when the operation panicked.
	Panic any
}

func (e *OperationError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("navigate: operation for %q panicked: %v", e.Path, e.Panic)
	}
	return fmt.Sprintf("navigate: operation for %q: %v", e.Path, e.Err)
}

// Is reports whether target is ErrOperationFailed.
func (e *OperationError) Is(target error) bool { return target == ErrOperationFailed }

func (e *OperationError) Unwrap() error { return e.Err }
