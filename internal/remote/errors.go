package remote

import (
	"errors"
	"fmt"
)

// ErrNetworkFailure indicates the remote endpoint could not be reached.
var ErrNetworkFailure = errors.New("quote endpoint unreachable")

// ErrRemoteUnavailable indicates the remote endpoint answered but could not
// serve quotes.
var ErrRemoteUnavailable = errors.New("quote endpoint unavailable")

// StatusError represents a non-2xx response from the quote endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quote endpoint error: HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrRemoteUnavailable
}
