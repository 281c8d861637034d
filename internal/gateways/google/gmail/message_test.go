package gmail

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

func TestBuildMIMEHeaders(t *testing.T) {
	env := domain.Envelope{
		To:      []string{"a@example.com", "b@example.com"},
		Cc:      []string{"c@example.com"},
		Subject: "Weekly report",
		Body:    "hello",
	}

	raw, err := BuildMIME(context.Background(), nil, env)
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Cc: c@example.com\r\n")
	assert.Contains(t, msg, "Subject: Weekly report\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "hello")

	// Empty recipients leave no header line behind.
	assert.NotContains(t, msg, "Bcc:")
}

func TestBuildMIMEHTMLAlternative(t *testing.T) {
	env := domain.Envelope{
		To:       []string{"a@example.com"},
		Body:     "plain fallback",
		HTMLBody: "<p>rich</p>",
	}

	raw, err := BuildMIME(context.Background(), nil, env)
	require.NoError(t, err)
	msg := string(raw)

	// No attachments, so the alternative part is the whole message.
	assert.Contains(t, msg, "multipart/alternative")
	assert.NotContains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "plain fallback")
	assert.Contains(t, msg, "<p>rich</p>")
	// Plain part precedes the HTML part.
	assert.Less(t, strings.Index(msg, "plain fallback"), strings.Index(msg, "<p>rich</p>"))
}

func TestBuildMIMEHTMLWithAttachmentIsMixed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	env := domain.Envelope{
		To:          []string{"a@example.com"},
		Body:        "plain",
		HTMLBody:    "<p>rich</p>",
		Attachments: []string{path},
	}

	raw, err := BuildMIME(context.Background(), nil, env)
	require.NoError(t, err)
	msg := string(raw)

	// Attachments force the mixed wrapper around the alternative part.
	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Less(t, strings.Index(msg, "multipart/mixed"), strings.Index(msg, "multipart/alternative"))
	assert.Contains(t, msg, `filename="data.bin"`)
}

func TestBuildMIMELocalAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("attachment payload"), 0o600))

	env := domain.Envelope{
		To:          []string{"a@example.com"},
		Body:        "see attached",
		Attachments: []string{path},
	}

	raw, err := BuildMIME(context.Background(), nil, env)
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, `filename="notes.txt"`)
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("attachment payload")))
}

func TestBuildMIMEMissingAttachmentFails(t *testing.T) {
	env := domain.Envelope{
		To:          []string{"a@example.com"},
		Attachments: []string{"/nonexistent/file.txt"},
	}

	_, err := BuildMIME(context.Background(), nil, env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/file.txt")
}

func TestBuildMIMEURLAttachment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/files/report.pdf" {
			w.Write([]byte("pdf bytes")) //nolint:errcheck
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	t.Run("downloads and names from the URL path", func(t *testing.T) {
		env := domain.Envelope{
			To:             []string{"a@example.com"},
			AttachmentURLs: []domain.URLAttachment{{URL: srv.URL + "/files/report.pdf"}},
		}

		raw, err := BuildMIME(context.Background(), srv.Client(), env)
		require.NoError(t, err)
		msg := string(raw)

		assert.Contains(t, msg, `filename="report.pdf"`)
		assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("pdf bytes")))
	})

	t.Run("failed download is skipped, not fatal", func(t *testing.T) {
		env := domain.Envelope{
			To:   []string{"a@example.com"},
			Body: "body survives",
			AttachmentURLs: []domain.URLAttachment{
				{URL: srv.URL + "/missing"},
			},
		}

		raw, err := BuildMIME(context.Background(), srv.Client(), env)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "body survives")
		assert.NotContains(t, string(raw), "missing")
	})

	t.Run("explicit filename wins", func(t *testing.T) {
		env := domain.Envelope{
			To: []string{"a@example.com"},
			AttachmentURLs: []domain.URLAttachment{
				{URL: srv.URL + "/files/report.pdf", Filename: "renamed.pdf"},
			},
		}

		raw, err := BuildMIME(context.Background(), srv.Client(), env)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `filename="renamed.pdf"`)
	})
}

func TestEncodeRaw(t *testing.T) {
	raw := encodeRaw([]byte("To: a@example.com\r\n\r\nhi"))
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Equal(t, "To: a@example.com\r\n\r\nhi", string(decoded))
}
