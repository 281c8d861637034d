package driven

import (
	"context"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// CredentialsStore persists cached OAuth credentials per account.
type CredentialsStore interface {
	// Save stores credentials. Creates if new, updates if exists.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials by ID.
	Get(ctx context.Context, id string) (*domain.Credentials, error)

	// GetByAccount retrieves credentials for a specific account identifier.
	// Returns nil if no credentials exist for the account.
	GetByAccount(ctx context.Context, account string) (*domain.Credentials, error)

	// Delete removes credentials by ID.
	Delete(ctx context.Context, id string) error
}
