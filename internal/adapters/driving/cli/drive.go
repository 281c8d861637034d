package cli

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gwork-cli/internal/adapters/driving/tui/uploadview"
	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google/drive"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

var (
	driveParentID string
	driveName     string
	driveMIMEType string
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Drive storage operations",
}

var driveMkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newDriveGateway(cmd.Context())
		if err != nil {
			return err
		}
		id, err := g.CreateFolder(cmd.Context(), args[0], driveParentID)
		if err != nil {
			return err
		}
		cmd.Println(id)
		return nil
	},
}

var driveUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file in resumable chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveUpload,
}

var driveWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Upload every new file created in a directory",
	Long: `Watch a local directory and upload each regular file created in it.
Runs until interrupted. Individual upload failures are logged and do
not stop the watch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newDriveGateway(cmd.Context())
		if err != nil {
			return err
		}
		return g.WatchDir(cmd.Context(), args[0], driveParentID, logProgress(""))
	},
}

func init() {
	for _, c := range []*cobra.Command{driveMkdirCmd, driveUploadCmd, driveWatchCmd} {
		c.Flags().StringVar(&driveParentID, "parent", "", "destination folder ID")
	}
	driveUploadCmd.Flags().StringVar(&driveName, "name", "", "object name in Drive (defaults to the file's base name)")
	driveUploadCmd.Flags().StringVar(&driveMIMEType, "mime-type", "", "MIME type (guessed from the extension when omitted)")

	driveCmd.AddCommand(driveMkdirCmd)
	driveCmd.AddCommand(driveUploadCmd)
	driveCmd.AddCommand(driveWatchCmd)
	rootCmd.AddCommand(driveCmd)
}

func runDriveUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	g, err := newDriveGateway(cmd.Context())
	if err != nil {
		return err
	}

	mimeType := driveMIMEType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}

	name := driveName
	if name == "" {
		name = filepath.Base(path)
	}

	var fileID string
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fileID, err = uploadview.Run(cmd.Context(), name, func(progress domain.ProgressFunc) (string, error) {
			return g.UploadFile(cmd.Context(), path, name, mimeType, driveParentID, progress)
		})
	} else {
		fileID, err = g.UploadFile(cmd.Context(), path, name, mimeType, driveParentID, logProgress(name))
	}
	if err != nil {
		return err
	}

	cmd.Println(drive.FileWebLink(fileID))
	return nil
}

// logProgress reports chunk boundaries as plain log lines for
// non-interactive runs.
func logProgress(name string) domain.ProgressFunc {
	return func(p domain.UploadProgress) {
		if name != "" {
			logger.Info("%s: %.0f%% (%d bytes)", name, p.Percent(), p.Uploaded)
			return
		}
		logger.Info("uploaded %.0f%% (%d bytes)", p.Percent(), p.Uploaded)
	}
}
