package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")
)

// RemoteError is the uniform "remote operation failed" condition. It
// carries the server's status code and message and wraps the sentinel
// matching the status so errors.Is keeps working.
type RemoteError struct {
	// Op names the failed operation, e.g. "sheets.values.append".
	Op string
	// StatusCode is the HTTP status returned by the server.
	StatusCode int
	// Message is the server-supplied error message.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("google: %s failed (status %d): %s", e.Op, e.StatusCode, e.Message)
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError converts a Google API error into a RemoteError carrying the
// operation name, status and server message. Non-googleapi errors are
// returned unchanged.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	remote := &RemoteError{
		Op:         op,
		StatusCode: gerr.Code,
		Message:    gerr.Message,
		Err:        err,
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		remote.Err = fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case http.StatusForbidden:
		remote.Err = fmt.Errorf("%w: %w", ErrForbidden, err)
	case http.StatusNotFound:
		remote.Err = fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusTooManyRequests:
		remote.Err = fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	return remote
}
