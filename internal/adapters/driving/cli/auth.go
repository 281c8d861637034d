package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gwork-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/services"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
)

var (
	authAccount      string
	authTokenFile    string
	authAccessToken  string
	authRefreshToken string
	authExpiry       string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage cached account credentials",
	Long: `Store, inspect and remove the OAuth tokens gwork uses.

gwork does not run an OAuth flow itself; obtain a token externally
(e.g. with the gcloud CLI or an OAuth playground) and hand it over:

  # From a token.json file (oauth2 token format)
  gwork auth set --token-file token.json

  # From raw values
  gwork auth set --access-token ya29... --refresh-token 1//... \
    --expiry 2026-01-02T15:04:05Z

Refresh needs auth.client_id and auth.client_secret in the config file.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Cache OAuth tokens for an account",
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured account and token state",
	RunE:  runAuthStatus,
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the cached credentials for the configured account",
	RunE:  runAuthRemove,
}

func init() {
	authSetCmd.Flags().StringVar(&authAccount, "account", "", "account email (fetched from the userinfo endpoint when omitted)")
	authSetCmd.Flags().StringVar(&authTokenFile, "token-file", "", "path to a token JSON file")
	authSetCmd.Flags().StringVar(&authAccessToken, "access-token", "", "OAuth access token")
	authSetCmd.Flags().StringVar(&authRefreshToken, "refresh-token", "", "OAuth refresh token")
	authSetCmd.Flags().StringVar(&authExpiry, "expiry", "", "access token expiry (RFC 3339)")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRemoveCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	if err := ensureStores(); err != nil {
		return err
	}
	ctx := cmd.Context()

	oc, err := tokenFromFlags()
	if err != nil {
		return err
	}

	account := authAccount
	if account == "" {
		info, err := google.GetUserInfo(ctx, oc.AccessToken)
		if err != nil {
			return fmt.Errorf("resolving account (pass --account to skip): %w", err)
		}
		account = info.Email
	}

	now := time.Now().UTC()
	creds := domain.Credentials{
		ID:                uuid.New().String(),
		AccountIdentifier: account,
		OAuth:             oc,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Reuse the existing row's ID so set is an upsert per account.
	if existing, err := store.CredentialsStore().GetByAccount(ctx, account); err == nil && existing != nil {
		creds.ID = existing.ID
		creds.CreatedAt = existing.CreatedAt
	}

	svc := services.NewCredentialsService(store.CredentialsStore())
	if err := svc.Save(ctx, creds); err != nil {
		return err
	}
	if err := configStore.Set(file.KeyAccount, account); err != nil {
		return err
	}

	cmd.Printf("Cached credentials for %s\n", account)
	return nil
}

// tokenFromFlags reads the token from --token-file or the raw flags.
func tokenFromFlags() (*domain.OAuthCredentials, error) {
	if authTokenFile != "" {
		data, err := os.ReadFile(authTokenFile)
		if err != nil {
			return nil, fmt.Errorf("token file: %w", err)
		}
		var tok oauth2.Token
		if err := json.Unmarshal(data, &tok); err != nil {
			return nil, fmt.Errorf("parsing token file: %w", err)
		}
		if tok.AccessToken == "" {
			return nil, fmt.Errorf("%w: token file has no access_token", domain.ErrInvalidInput)
		}
		return &domain.OAuthCredentials{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			TokenType:    tok.TokenType,
			Expiry:       tok.Expiry,
		}, nil
	}

	if authAccessToken == "" {
		return nil, fmt.Errorf("%w: pass --token-file or --access-token", domain.ErrInvalidInput)
	}

	oc := &domain.OAuthCredentials{
		AccessToken:  authAccessToken,
		RefreshToken: authRefreshToken,
		TokenType:    "Bearer",
	}
	if authExpiry != "" {
		t, err := time.Parse(time.RFC3339, authExpiry)
		if err != nil {
			return nil, fmt.Errorf("parsing --expiry: %w", err)
		}
		oc.Expiry = t
	}
	return oc, nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureStores(); err != nil {
		return err
	}

	account := configStore.GetString(file.KeyAccount)
	if account == "" {
		cmd.Println("No account configured. Run 'gwork auth set'.")
		return nil
	}

	creds, err := store.CredentialsStore().GetByAccount(context.Background(), account)
	if err != nil {
		return err
	}

	cmd.Printf("Account: %s\n", account)
	switch {
	case creds == nil || !creds.IsAuthenticated():
		cmd.Println("Token:   missing")
	case creds.OAuth.IsExpired() && creds.HasRefreshToken():
		cmd.Println("Token:   expired (refresh token available)")
	case creds.OAuth.IsExpired():
		cmd.Println("Token:   expired")
	default:
		cmd.Println("Token:   valid")
		if !creds.OAuth.Expiry.IsZero() {
			cmd.Printf("Expires: %s\n", creds.OAuth.Expiry.Format(time.RFC3339))
		}
	}
	return nil
}

func runAuthRemove(cmd *cobra.Command, _ []string) error {
	if err := ensureStores(); err != nil {
		return err
	}
	ctx := cmd.Context()

	account := configStore.GetString(file.KeyAccount)
	if account == "" {
		cmd.Println("No account configured.")
		return nil
	}

	creds, err := store.CredentialsStore().GetByAccount(ctx, account)
	if err != nil {
		return err
	}
	if creds != nil {
		if err := store.CredentialsStore().Delete(ctx, creds.ID); err != nil {
			return err
		}
	}
	if err := configStore.Set(file.KeyAccount, ""); err != nil {
		return err
	}

	cmd.Printf("Removed credentials for %s\n", account)
	return nil
}
