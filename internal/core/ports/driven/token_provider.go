package driven

import (
	"context"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// AccountIdentifier returns the account the token belongs to.
	AccountIdentifier() string

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}
