// Package drive is the document/folder gateway: one-call wrappers for
// storage object creation and resumable chunked upload.
package drive

import (
	"context"
	"fmt"

	driveapi "google.golang.org/api/drive/v3"

	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// MimeTypeFolder is the Drive folder MIME type.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// Ensure Gateway implements the driving port.
var _ driving.StorageService = (*Gateway)(nil)

// Gateway is the drive-storage gateway. Bound to one call scope; not
// safe for concurrent use.
type Gateway struct {
	sess    *google.Session
	limiter *google.RateLimiter

	// driveID is the shared drive objects are created in. It comes from
	// explicit configuration; empty means the user's My Drive. There is
	// no built-in fallback value.
	driveID string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDriveID sets the shared drive new objects are created in.
func WithDriveID(id string) Option {
	return func(g *Gateway) {
		g.driveID = id
	}
}

// WithRateLimiter replaces the default Drive rate limiter.
func WithRateLimiter(l *google.RateLimiter) Option {
	return func(g *Gateway) {
		g.limiter = l
	}
}

// NewGateway creates a drive-storage gateway over the session.
func NewGateway(sess *google.Session, opts ...Option) *Gateway {
	g := &Gateway{
		sess:    sess,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateFolder creates a folder and returns its ID. parentID may be
// empty; the folder is then created at the configured drive's root (or
// My Drive when no drive is configured).
func (g *Gateway) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	meta := &driveapi.File{
		Name:     name,
		MimeType: MimeTypeFolder,
	}
	if parents := g.parents(parentID); len(parents) > 0 {
		meta.Parents = parents
	}

	folder, err := g.sess.Drive().Files.Create(meta).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", google.WrapError("drive.files.create", err)
	}

	logger.Debug("created folder %q with ID %s", name, folder.Id)
	return folder.Id, nil
}

// parents resolves the parent list for a new object: the explicit
// parent when given, otherwise the configured drive.
func (g *Gateway) parents(parentID string) []string {
	if parentID != "" {
		return []string{parentID}
	}
	if g.driveID != "" {
		return []string{g.driveID}
	}
	return nil
}

// FileWebLink returns the browser URL for a file ID.
func FileWebLink(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID)
}
