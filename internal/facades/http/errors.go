package http

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when the base endpoint address is not configured.
var ErrConfiguration = errors.New("API_BASE not set")

// TransportError reports a failed network read: a non-success status,
// an unreachable endpoint or a body that cannot be decoded.
type TransportError struct {
	StatusCode int   // HTTP status, 0 when no response was received
	Err        error // Underlying cause, nil for plain status failures
}

// Error implements error.
func (e *TransportError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("total_flags HTTP %d", e.StatusCode)
	case e.StatusCode == 0:
		return fmt.Sprintf("total_flags: %v", e.Err)
	default:
		return fmt.Sprintf("total_flags HTTP %d: %v", e.StatusCode, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}
