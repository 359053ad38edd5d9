package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind classifies a failed call.
type Kind string

const (
	// KindAuth: the backend rejected the credential. By the time the
	// caller sees this error the session teardown has already run.
	KindAuth Kind = "auth"
	// KindAPI: a backend-reported failure other than auth (validation,
	// business rule, server error).
	KindAPI Kind = "api"
	// KindTransport: the request never completed.
	KindTransport Kind = "transport"
	// KindDecode: the response arrived but its payload did not have the
	// expected shape.
	KindDecode Kind = "decode"
)

// Error is the failure type returned by every Client operation.
// Status is the HTTP status code when the backend answered, 0 otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// Unwrap maps kinds onto the package sentinels so callers can use
// errors.Is without knowing about Kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAuth:
		return ErrUnauthorized
	case KindTransport:
		return ErrUnavailable
	}
	return nil
}

// Message extracts a human-readable message from err, falling back to
// the given text when err carries none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status of a backend-reported failure, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
