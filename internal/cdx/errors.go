package cdx

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is returned when the index answers with a non-2xx
	// status code. Use errors.As with *StatusError to get the code.
	ErrUnexpectedStatus = errors.New("unexpected status from CDX index")

	// ErrInvalidProxyAddress is returned when the proxy address is not in
	// "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidEndpoint is returned when the index endpoint is not an
	// absolute http or https URL.
	ErrInvalidEndpoint = errors.New("invalid CDX endpoint: expected absolute http(s) URL")
)

// StatusError describes a non-2xx response from the index.
type StatusError struct {
	// Domain is the domain that was queried.
	Domain string

	// StatusCode is the HTTP status code received.
	StatusCode int

	// Status is the HTTP status line text.
	Status string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for %s: %s", ErrUnexpectedStatus, e.Domain, e.Status)
}

// Unwrap makes errors.Is(err, ErrUnexpectedStatus) succeed.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
