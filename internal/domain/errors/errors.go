// Package errors holds the error taxonomy shared by the API client, the
// local stores and the services.
package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Authentication errors. Both are terminal: the caller has to log in again.
var (
	ErrNoRefreshCredential = errors.New("no refresh credential available")
	ErrRefreshFailed       = errors.New("token refresh failed")
)

// Service level errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlertNotFound    = errors.New("alert not found")
	ErrAlertExists      = errors.New("flight is already watched")
	ErrInvalidRequest   = errors.New("invalid request")
)

// HTTPError is a terminal non-2xx response
type HTTPError struct {
	Status int
	Body   string
}

// NewHTTPError builds an HTTPError, using the status text when the body is empty
func NewHTTPError(status int, body []byte) *HTTPError {
	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	return &HTTPError{Status: status, Body: text}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// MalformedResponseError reports a response body of unexpected shape
type MalformedResponseError struct {
	Endpoint string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("malformed response from %s", e.Endpoint)
	}
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// PersistenceError reports a local storage failure. It is logged, never fatal.
type PersistenceError struct {
	Op    string
	Key   string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// IsAuthError reports whether err means the session can no longer be renewed
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoRefreshCredential) || errors.Is(err, ErrRefreshFailed) || errors.Is(err, ErrNotAuthenticated)
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// IsMalformed reports whether err is a MalformedResponseError
func IsMalformed(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}
