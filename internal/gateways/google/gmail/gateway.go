// Package gmail is the messaging gateway: draft composition, CRUD and
// sending over the Gmail API.
package gmail

import (
	"context"
	"net/http"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// userID addresses the authenticated user's own mailbox.
const userID = "me"

// Ensure Gateway implements the driving port.
var _ driving.MessagingService = (*Gateway)(nil)

// Gateway is the messaging gateway. Bound to one call scope; not safe
// for concurrent use.
type Gateway struct {
	sess    *google.Session
	limiter *google.RateLimiter
	client  *http.Client
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the client used to fetch URL attachments.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithRateLimiter replaces the default Gmail rate limiter.
func WithRateLimiter(l *google.RateLimiter) Option {
	return func(g *Gateway) {
		g.limiter = l
	}
}

// NewGateway creates a messaging gateway over the session.
func NewGateway(sess *google.Session, opts ...Option) *Gateway {
	g := &Gateway{
		sess:    sess,
		limiter: google.NewRateLimiter(google.ServiceGmail),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateDraft composes the envelope and stores it as a draft.
func (g *Gateway) CreateDraft(ctx context.Context, env domain.Envelope) (*domain.Draft, error) {
	msg, err := g.apiMessage(ctx, env)
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	draft, err := g.sess.Gmail().Users.Drafts.Create(userID, &gmailapi.Draft{Message: msg}).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError("gmail.drafts.create", err)
	}

	logger.Debug("created draft %s", draft.Id)
	return draftFromAPI(draft), nil
}

// UpdateDraft replaces the content of an existing draft.
func (g *Gateway) UpdateDraft(ctx context.Context, draftID string, env domain.Envelope) (*domain.Draft, error) {
	msg, err := g.apiMessage(ctx, env)
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	draft, err := g.sess.Gmail().Users.Drafts.Update(userID, draftID, &gmailapi.Draft{Message: msg}).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError("gmail.drafts.update", err)
	}

	return draftFromAPI(draft), nil
}

// GetDraft retrieves a draft by ID.
func (g *Gateway) GetDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	draft, err := g.sess.Gmail().Users.Drafts.Get(userID, draftID).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError("gmail.drafts.get", err)
	}

	return draftFromAPI(draft), nil
}

// ListDrafts lists up to maxResults drafts.
func (g *Gateway) ListDrafts(ctx context.Context, maxResults int64) ([]domain.Draft, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := g.sess.Gmail().Users.Drafts.List(userID).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, google.WrapError("gmail.drafts.list", err)
	}

	drafts := make([]domain.Draft, 0, len(resp.Drafts))
	for _, d := range resp.Drafts {
		drafts = append(drafts, *draftFromAPI(d))
	}
	return drafts, nil
}

// DeleteDraft removes a draft.
func (g *Gateway) DeleteDraft(ctx context.Context, draftID string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := g.sess.Gmail().Users.Drafts.Delete(userID, draftID).Context(ctx).Do(); err != nil {
		return google.WrapError("gmail.drafts.delete", err)
	}
	return nil
}

// SendDraft sends a stored draft and returns the sent message ID.
func (g *Gateway) SendDraft(ctx context.Context, draftID string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	msg, err := g.sess.Gmail().Users.Drafts.Send(userID, &gmailapi.Draft{Id: draftID}).Context(ctx).Do()
	if err != nil {
		return "", google.WrapError("gmail.drafts.send", err)
	}

	logger.Debug("sent draft %s as message %s", draftID, msg.Id)
	return msg.Id, nil
}

// Send composes the envelope, stores it as a draft and sends it.
func (g *Gateway) Send(ctx context.Context, env domain.Envelope) (string, error) {
	draft, err := g.CreateDraft(ctx, env)
	if err != nil {
		return "", err
	}
	return g.SendDraft(ctx, draft.ID)
}

// apiMessage encodes an envelope into the API's raw message form.
func (g *Gateway) apiMessage(ctx context.Context, env domain.Envelope) (*gmailapi.Message, error) {
	mime, err := BuildMIME(ctx, g.client, env)
	if err != nil {
		return nil, err
	}

	msg := &gmailapi.Message{Raw: encodeRaw(mime)}
	if env.ThreadID != "" {
		msg.ThreadId = env.ThreadID
	}
	return msg, nil
}

// draftFromAPI converts an API draft to the domain type.
func draftFromAPI(d *gmailapi.Draft) *domain.Draft {
	draft := &domain.Draft{ID: d.Id}
	if d.Message != nil {
		draft.MessageID = d.Message.Id
		draft.ThreadID = d.Message.ThreadId
		draft.Snippet = d.Message.Snippet
	}
	return draft
}
