package domain

import "time"

// Credentials stores the OAuth tokens for one Google account.
// Each account identifier has exactly one Credentials row in the cache.
type Credentials struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// AccountIdentifier is the user's email from the provider.
	// Fetched from the userinfo endpoint after authentication.
	AccountIdentifier string `json:"account_identifier,omitempty"`

	// OAuth holds the cached OAuth tokens.
	OAuth *OAuthCredentials `json:"oauth,omitempty"`

	// CreatedAt is when the credentials were created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the credentials were last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// OAuthCredentials stores OAuth tokens for a specific user account.
type OAuthCredentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the OAuth access token has expired.
func (c *OAuthCredentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// IsAuthenticated returns true if the credentials contain a usable token.
func (c *Credentials) IsAuthenticated() bool {
	return c.OAuth != nil && c.OAuth.AccessToken != ""
}

// NeedsRefresh returns true if OAuth tokens need refreshing.
func (c *Credentials) NeedsRefresh() bool {
	if c.OAuth == nil {
		return false
	}
	return c.OAuth.IsExpired() && c.OAuth.RefreshToken != ""
}

// HasRefreshToken returns true if a refresh token is available.
func (c *Credentials) HasRefreshToken() bool {
	return c.OAuth != nil && c.OAuth.RefreshToken != ""
}
