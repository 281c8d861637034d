package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserInfo contains the user's basic profile information from Google.
type UserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Session bundles authenticated Google API clients for one call scope.
// Construct a Session right before a gateway operation and let it go
// out of scope afterwards; the underlying transport is not safe for
// concurrent reuse, so concurrent callers must each build their own
// Session rather than share one.
type Session struct {
	sheets *sheets.Service
	drive  *drive.Service
	gmail  *gmail.Service
}

// NewSession creates authenticated API clients using the provided TokenSource.
func NewSession(ctx context.Context, ts oauth2.TokenSource) (*Session, error) {
	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	gmailSvc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}

	return &Session{
		sheets: sheetsSvc,
		drive:  driveSvc,
		gmail:  gmailSvc,
	}, nil
}

// Sheets returns the Sheets API client.
func (s *Session) Sheets() *sheets.Service { return s.sheets }

// Drive returns the Drive API client.
func (s *Session) Drive() *drive.Service { return s.drive }

// Gmail returns the Gmail API client.
func (s *Session) Gmail() *gmail.Service { return s.gmail }

// GetUserInfo fetches the user's profile information using an access token.
// Returns the user's email address which serves as the account identifier.
func GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	return &userInfo, nil
}
