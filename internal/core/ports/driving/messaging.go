package driving

import (
	"context"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// MessagingService exposes mailbox draft operations.
type MessagingService interface {
	// CreateDraft composes an envelope and stores it as a draft.
	CreateDraft(ctx context.Context, env domain.Envelope) (*domain.Draft, error)

	// UpdateDraft replaces the content of an existing draft.
	UpdateDraft(ctx context.Context, draftID string, env domain.Envelope) (*domain.Draft, error)

	// GetDraft retrieves a draft by ID.
	GetDraft(ctx context.Context, draftID string) (*domain.Draft, error)

	// ListDrafts lists up to maxResults drafts.
	ListDrafts(ctx context.Context, maxResults int64) ([]domain.Draft, error)

	// DeleteDraft removes a draft.
	DeleteDraft(ctx context.Context, draftID string) error

	// SendDraft sends a stored draft and returns the sent message ID.
	SendDraft(ctx context.Context, draftID string) (string, error)

	// Send composes an envelope, stores it as a draft and sends it.
	Send(ctx context.Context, env domain.Envelope) (string, error)
}
