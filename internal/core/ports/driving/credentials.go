package driving

import (
	"context"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// CredentialsService manages cached account credentials.
type CredentialsService interface {
	// Save creates or updates credentials.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials by ID.
	Get(ctx context.Context, id string) (*domain.Credentials, error)

	// GetByAccount retrieves credentials for an account identifier.
	GetByAccount(ctx context.Context, account string) (*domain.Credentials, error)

	// Delete removes credentials by ID.
	Delete(ctx context.Context, id string) error
}
