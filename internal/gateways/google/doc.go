// Package google provides shared infrastructure for the Google API
// gateways.
//
// This package contains common utilities used by the sheets, drive and
// gmail gateways including:
//   - TokenSource adapter to bridge gwork's TokenProvider to oauth2.TokenSource
//   - Session, a per-call-scope bundle of authenticated API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each gateway is built from a Session:
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	sess, err := google.NewSession(ctx, ts)
//	gw := sheets.NewGateway(sess)
//
// A Session is not safe for concurrent use. Construct one Session per
// goroutine; never share one across concurrent callers.
//
// # OAuth2 Scopes
//
// The gateways use these scopes:
//   - https://www.googleapis.com/auth/spreadsheets
//   - https://www.googleapis.com/auth/drive.file
//   - https://www.googleapis.com/auth/gmail.compose
//   - https://www.googleapis.com/auth/userinfo.email (non-sensitive)
package google
