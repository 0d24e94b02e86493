package domain

import (
	"fmt"

	apperrors "github.com/impactrealty/backoffice/internal/errors"
)

// Failure reasons carried on failed invocation results. UnknownDestination is
// the only reason a caller ever observes: every other backend malady is
// recovered through a synthetic fallback.
const (
	ReasonUnknownDestination = "UnknownDestination"
)

// Agent gateway errors.
var (
	// ErrUnknownDestination indicates the named destination is not registered.
	// This is a hard failure and is never masked by a synthetic response.
	ErrUnknownDestination = apperrors.Wrap(apperrors.ErrNotFound, "unknown destination")

	// ErrExecutionTimeout indicates no response arrived within the destination's
	// configured timeout. The in-flight call is actively cancelled.
	ErrExecutionTimeout = apperrors.Wrap(apperrors.ErrUnavailable, "execution timed out")

	// ErrTransport indicates a connection-level failure (DNS, refusal, TLS).
	ErrTransport = apperrors.Wrap(apperrors.ErrUnavailable, "transport failure")
)

// StatusError indicates the destination responded with a non-success HTTP
// status. It carries the status code and any response body.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("destination responded with status %d", e.Code)
	}
	return fmt.Sprintf("destination responded with status %d: %s", e.Code, e.Body)
}

// Unwrap makes StatusError match ErrUnavailable in errors.Is checks, keeping it
// recoverable like the other executor failures.
func (e *StatusError) Unwrap() error {
	return apperrors.ErrUnavailable
}
