package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrAuthRequired indicates an operation requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the authentication has expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Gateway Errors.

	// ErrInvalidTableName indicates a table name contains characters outside
	// letters, digits, underscores and spaces.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrNonStringListValue indicates a record holds a list with a non-string
	// element. List cells are joined with spaces and only strings can be joined.
	ErrNonStringListValue = errors.New("list value contains non-string element")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
