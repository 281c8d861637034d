package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// UploadChunkSize is the resumable upload chunk size. Each chunk
// boundary is a progress report and the only natural inspection point;
// a chunk failure aborts the sequence immediately.
const UploadChunkSize = 1 << 20 // 1 MiB

// Upload streams r to Drive as a resumable chunked upload and returns
// the new file ID. progress (optional) fires before the first byte, at
// every chunk boundary, and once more on completion.
func (g *Gateway) Upload(ctx context.Context, r io.Reader, spec driving.UploadSpec, progress domain.ProgressFunc) (string, error) {
	if spec.Name == "" {
		return "", fmt.Errorf("%w: upload needs a name", domain.ErrInvalidInput)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	if progress != nil {
		progress(domain.UploadProgress{Name: spec.Name, Uploaded: 0, Total: spec.Size})
	}

	meta := &driveapi.File{
		Name:     spec.Name,
		MimeType: spec.MIMEType,
	}
	if parents := g.parents(spec.ParentID); len(parents) > 0 {
		meta.Parents = parents
	}

	call := g.sess.Drive().Files.Create(meta).
		Media(r, googleapi.ChunkSize(UploadChunkSize)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx)

	if progress != nil {
		call = call.ProgressUpdater(func(current, total int64) {
			if total <= 0 {
				total = spec.Size
			}
			progress(domain.UploadProgress{Name: spec.Name, Uploaded: current, Total: total})
		})
	}

	file, err := call.Do()
	if err != nil {
		return "", google.WrapError("drive.files.create.media", err)
	}

	if progress != nil && spec.Size >= 0 {
		progress(domain.UploadProgress{Name: spec.Name, Uploaded: spec.Size, Total: spec.Size})
	}

	logger.Debug("uploaded %q as file ID %s", spec.Name, file.Id)
	return file.Id, nil
}

// UploadFile uploads a local file. The path is checked before any
// remote call; a missing file fails fast. name defaults to the path's
// base name.
func (g *Gateway) UploadFile(ctx context.Context, path, name, mimeType, parentID string, progress domain.ProgressFunc) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("local file %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if name == "" {
		name = filepath.Base(path)
	}

	return g.Upload(ctx, f, driving.UploadSpec{
		Name:     name,
		MIMEType: mimeType,
		ParentID: parentID,
		Size:     info.Size(),
	}, progress)
}
