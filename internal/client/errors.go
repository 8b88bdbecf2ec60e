package client

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the root of every error returned by Client: transport
// failures, timeouts, an open breaker and non-success statuses.
var ErrRequestFailed = errors.New("checkout api request failed")

// StatusError is returned when the API answers with a non-success status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("checkout api: status %d", e.Code)
	}
	return fmt.Sprintf("checkout api: status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}
