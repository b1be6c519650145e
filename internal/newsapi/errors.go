package newsapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds for a headlines fetch. Callers match with errors.Is.
var (
	// ErrNetwork covers transport failures: DNS, refused connections, timeouts.
	ErrNetwork = errors.New("network failure")

	// ErrHTTPStatus is matched by every *StatusError.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrMalformedResponse means the body was not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Code       string // API error code, e.g. "apiKeyInvalid"
	Message    string // API-supplied description, may be empty
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

func (e *StatusError) Is(target error) bool { return target == ErrHTTPStatus }
