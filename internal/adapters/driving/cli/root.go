// Package cli implements the gwork command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"

	"github.com/custodia-labs/gwork-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gwork-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gwork-cli/internal/core/services"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google/drive"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google/gmail"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google/sheets"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// OAuth scopes the gateways need.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/userinfo.email",
}

var (
	version = "dev"

	flagVerbose   bool
	flagConfigDir string

	configStore *file.ConfigStore
	store       *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "gwork",
	Short: "Google Workspace gateway CLI",
	Long: `gwork wraps the Google Sheets, Drive and Gmail APIs with one-call
operations: append records to sheets, create schema-driven tables,
upload files with resumable progress, and compose mail drafts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.gwork)")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	defer func() {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	}()
	return rootCmd.Execute()
}

// ensureStores lazily opens the config store and the token cache.
// Commands that never touch them (version, help) skip this.
func ensureStores() error {
	if configStore == nil {
		cs, err := file.NewConfigStore(flagConfigDir)
		if err != nil {
			return fmt.Errorf("opening config store: %w", err)
		}
		configStore = cs
	}
	if store == nil {
		st, err := sqlite.NewStore(dataDir())
		if err != nil {
			return fmt.Errorf("opening credential cache: %w", err)
		}
		store = st
	}
	return nil
}

func dataDir() string {
	if flagConfigDir == "" {
		return "" // store falls back to ~/.gwork/data
	}
	return flagConfigDir + "/data"
}

// tokenProvider builds the token provider for the configured account.
func tokenProvider(ctx context.Context) (*services.StoredTokenProvider, error) {
	if err := ensureStores(); err != nil {
		return nil, err
	}

	account := configStore.GetString(file.KeyAccount)
	if account == "" {
		return nil, fmt.Errorf("%w: run 'gwork auth set' first", domain.ErrAuthRequired)
	}

	creds, err := store.CredentialsStore().GetByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, fmt.Errorf("%w: no cached credentials for %s", domain.ErrAuthRequired, account)
	}

	var oauthCfg *oauth2.Config
	if clientID := configStore.GetString(file.KeyClientID); clientID != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: configStore.GetString(file.KeyClientSecret),
			Endpoint:     oauthgoogle.Endpoint,
			Scopes:       oauthScopes,
		}
	}

	return services.NewStoredTokenProvider(store.CredentialsStore(), oauthCfg, creds), nil
}

// newSession builds one call-scope Session. Each command (and each MCP
// tool invocation) gets its own; the transport must not be shared
// across concurrent callers.
func newSession(ctx context.Context) (*google.Session, error) {
	tp, err := tokenProvider(ctx)
	if err != nil {
		return nil, err
	}
	return google.NewSession(ctx, google.NewTokenSource(ctx, tp))
}

// limiterFor builds the rate limiter for a service, honouring config
// overrides under limits.<service>_rps and limits.<service>_burst.
func limiterFor(svc google.ServiceType) *google.RateLimiter {
	rps := configStore.GetInt(fmt.Sprintf(file.KeyRateLimitRPS, svc))
	if rps <= 0 {
		return google.NewRateLimiter(svc)
	}
	burst := configStore.GetInt(fmt.Sprintf(file.KeyRateLimitBurst, svc))
	if burst <= 0 {
		burst = rps
	}
	return google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: float64(rps),
		BurstSize:         burst,
	})
}

func newTabular(ctx context.Context) (driving.TabularService, error) {
	sess, err := newSession(ctx)
	if err != nil {
		return nil, err
	}
	opts := []sheets.Option{sheets.WithRateLimiter(limiterFor(google.ServiceSheets))}
	if configStore.GetBool(file.KeySheetsNameCache) {
		opts = append(opts, sheets.WithNameCache())
	}
	return sheets.NewGateway(sess, opts...), nil
}

func newDriveGateway(ctx context.Context) (*drive.Gateway, error) {
	sess, err := newSession(ctx)
	if err != nil {
		return nil, err
	}
	opts := []drive.Option{drive.WithRateLimiter(limiterFor(google.ServiceDrive))}
	if driveID := configStore.GetString(file.KeyDriveID); driveID != "" {
		opts = append(opts, drive.WithDriveID(driveID))
	}
	return drive.NewGateway(sess, opts...), nil
}

func newStorage(ctx context.Context) (driving.StorageService, error) {
	return newDriveGateway(ctx)
}

func newMessaging(ctx context.Context) (driving.MessagingService, error) {
	sess, err := newSession(ctx)
	if err != nil {
		return nil, err
	}
	return gmail.NewGateway(sess, gmail.WithRateLimiter(limiterFor(google.ServiceGmail))), nil
}
