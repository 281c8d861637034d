package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// UploadSpec describes one object to upload.
type UploadSpec struct {
	// Name is the object name in remote storage.
	Name string
	// MIMEType is the object content type.
	MIMEType string
	// ParentID is the destination folder ID. Empty means the drive root.
	ParentID string
	// Size is the total byte count, or -1 if unknown.
	Size int64
}

// StorageService exposes drive-storage operations.
type StorageService interface {
	// CreateFolder creates a folder and returns its ID.
	CreateFolder(ctx context.Context, name, parentID string) (string, error)

	// Upload streams r to remote storage in resumable chunks, reporting
	// progress at each chunk boundary. Returns the new file ID.
	Upload(ctx context.Context, r io.Reader, spec UploadSpec, progress domain.ProgressFunc) (string, error)

	// UploadFile uploads a local file. A missing path fails before any
	// remote call.
	UploadFile(ctx context.Context, path, name, mimeType, parentID string, progress domain.ProgressFunc) (string, error)
}
