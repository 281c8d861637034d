package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// maxAttachmentSize caps URL-sourced attachment downloads (25MB, the
// Gmail message size limit).
const maxAttachmentSize = 25 * 1024 * 1024

// BuildMIME encodes an envelope as an RFC 2822 message. Local
// attachment paths are verified before anything is fetched or encoded;
// a missing path fails the whole build. URL attachments that fail to
// download are skipped with a warning.
func BuildMIME(ctx context.Context, client *http.Client, env domain.Envelope) ([]byte, error) {
	// Fail fast on missing local attachments before any remote fetch.
	for _, p := range env.Attachments {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("attachment %s: %w", p, err)
		}
	}

	if client == nil {
		client = http.DefaultClient
	}

	var buf bytes.Buffer
	writeHeader(&buf, "To", strings.Join(env.To, ", "))
	writeHeader(&buf, "Cc", strings.Join(env.Cc, ", "))
	writeHeader(&buf, "Bcc", strings.Join(env.Bcc, ", "))
	writeHeader(&buf, "Subject", env.Subject)
	writeHeader(&buf, "MIME-Version", "1.0")

	// With an HTML body and nothing attached the alternative part is the
	// whole message; it only gets a mixed wrapper when attachments follow.
	if env.HTMLBody != "" && len(env.Attachments) == 0 && len(env.AttachmentURLs) == 0 {
		aw := multipart.NewWriter(&buf)
		fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", aw.Boundary())
		if err := writeAlternative(aw, env); err != nil {
			return nil, err
		}
		if err := aw.Close(); err != nil {
			return nil, fmt.Errorf("closing message: %w", err)
		}
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	if err := writeBody(mw, env); err != nil {
		return nil, err
	}

	for _, p := range env.Attachments {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", p, err)
		}
		if err := writeAttachment(mw, filepath.Base(p), data); err != nil {
			return nil, err
		}
	}

	for _, att := range env.AttachmentURLs {
		data, name, err := fetchURLAttachment(ctx, client, att)
		if err != nil {
			logger.Warn("skipping attachment from %s: %v", att.URL, err)
			continue
		}
		if err := writeAttachment(mw, name, data); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing message: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBody writes the text part: multipart/alternative when an HTML
// body is present, a single text/plain part otherwise.
func writeBody(mw *multipart.Writer, env domain.Envelope) error {
	if env.HTMLBody == "" {
		if env.Body == "" {
			return nil
		}
		return writeTextPart(mw, "text/plain", env.Body)
	}

	var alt bytes.Buffer
	aw := multipart.NewWriter(&alt)
	if err := writeAlternative(aw, env); err != nil {
		return err
	}
	if err := aw.Close(); err != nil {
		return err
	}

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", aw.Boundary())},
	})
	if err != nil {
		return err
	}
	_, err = part.Write(alt.Bytes())
	return err
}

// writeAlternative writes the plain and HTML text parts, plain first
// so receivers prefer the richer part.
func writeAlternative(w *multipart.Writer, env domain.Envelope) error {
	if err := writeTextPart(w, "text/plain", env.Body); err != nil {
		return err
	}
	return writeTextPart(w, "text/html", env.HTMLBody)
}

func writeTextPart(mw *multipart.Writer, contentType, body string) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {contentType + `; charset="UTF-8"`},
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(part, body)
	return err
}

func writeAttachment(mw *multipart.Writer, filename string, data []byte) error {
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/octet-stream"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return err
	}
	enc := base64.NewEncoder(base64.StdEncoding, part)
	if _, err := enc.Write(data); err != nil {
		return err
	}
	return enc.Close()
}

// fetchURLAttachment downloads one URL attachment, deriving the
// filename from the URL path when none is given.
func fetchURLAttachment(ctx context.Context, client *http.Client, att domain.URLAttachment) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, http.NoBody)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentSize))
	if err != nil {
		return nil, "", err
	}

	name := att.Filename
	if name == "" {
		if u, err := url.Parse(att.URL); err == nil {
			name = path.Base(u.Path)
		}
		if name == "" || name == "." || name == "/" {
			name = "attachment"
		}
	}
	return data, name, nil
}

// writeHeader writes one header line, skipping empty values.
func writeHeader(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, "%s: %s\r\n", key, value)
}

// encodeRaw base64url-encodes an RFC 2822 message for the API's raw field.
func encodeRaw(msg []byte) string {
	return base64.URLEncoding.EncodeToString(msg)
}
