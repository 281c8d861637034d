package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driven"
)

// Ensure StoredTokenProvider implements the interface.
var _ driven.TokenProvider = (*StoredTokenProvider)(nil)

// StoredTokenProvider serves access tokens from the credentials store,
// refreshing them through the OAuth endpoint when they expire.
// Refreshed tokens are written back to the store so subsequent runs
// reuse them.
type StoredTokenProvider struct {
	mu     sync.Mutex
	store  driven.CredentialsStore
	oauth  *oauth2.Config
	creds  *domain.Credentials
	leeway time.Duration
}

// NewStoredTokenProvider creates a token provider for cached credentials.
// oauthCfg may be nil when the cached token never expires (e.g. test
// fixtures); refresh then fails with ErrTokenRefreshFailed.
func NewStoredTokenProvider(store driven.CredentialsStore, oauthCfg *oauth2.Config, creds *domain.Credentials) *StoredTokenProvider {
	return &StoredTokenProvider{
		store:  store,
		oauth:  oauthCfg,
		creds:  creds,
		leeway: 30 * time.Second,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (p *StoredTokenProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.creds == nil || p.creds.OAuth == nil || p.creds.OAuth.AccessToken == "" {
		return "", domain.ErrAuthRequired
	}

	oc := p.creds.OAuth
	if oc.Expiry.IsZero() || time.Until(oc.Expiry) > p.leeway {
		return oc.AccessToken, nil
	}

	if oc.RefreshToken == "" {
		return "", domain.ErrAuthExpired
	}
	if p.oauth == nil {
		return "", domain.ErrTokenRefreshFailed
	}

	refreshed, err := p.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  oc.AccessToken,
		RefreshToken: oc.RefreshToken,
		TokenType:    oc.TokenType,
		Expiry:       oc.Expiry,
	}).Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}

	oc.AccessToken = refreshed.AccessToken
	oc.TokenType = refreshed.TokenType
	oc.Expiry = refreshed.Expiry
	if refreshed.RefreshToken != "" {
		oc.RefreshToken = refreshed.RefreshToken
	}
	p.creds.UpdatedAt = time.Now().UTC()

	if p.store != nil {
		if err := p.store.Save(ctx, *p.creds); err != nil {
			return "", fmt.Errorf("persisting refreshed token: %w", err)
		}
	}

	return oc.AccessToken, nil
}

// AccountIdentifier returns the account the token belongs to.
func (p *StoredTokenProvider) AccountIdentifier() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.creds == nil {
		return ""
	}
	return p.creds.AccountIdentifier
}

// IsAuthenticated returns true if valid authentication is available.
func (p *StoredTokenProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creds != nil && p.creds.IsAuthenticated()
}
