package domain

// Envelope describes an outgoing mail message before MIME encoding.
type Envelope struct {
	// To, Cc and Bcc are recipient address lists.
	To  []string `json:"to,omitempty"`
	Cc  []string `json:"cc,omitempty"`
	Bcc []string `json:"bcc,omitempty"`

	// Subject is the message subject.
	Subject string `json:"subject,omitempty"`

	// Body is the plain text body.
	Body string `json:"body,omitempty"`
	// HTMLBody is the HTML body. When set the message is encoded as
	// multipart/alternative with Body as the plain fallback.
	HTMLBody string `json:"html_body,omitempty"`

	// Attachments are local file paths to attach. A missing path fails
	// the whole operation before any remote call.
	Attachments []string `json:"attachments,omitempty"`

	// AttachmentURLs are remote resources to fetch and attach.
	AttachmentURLs []URLAttachment `json:"attachment_urls,omitempty"`

	// ThreadID optionally places the message in an existing thread.
	ThreadID string `json:"thread_id,omitempty"`
}

// URLAttachment is a remote resource to download and attach.
type URLAttachment struct {
	// URL is the resource location.
	URL string `json:"url"`
	// Filename overrides the attachment name. Defaults to the last URL
	// path segment.
	Filename string `json:"filename,omitempty"`
}

// Draft is a stored mailbox draft.
type Draft struct {
	// ID is the provider's draft identifier.
	ID string `json:"id"`
	// MessageID is the identifier of the underlying message.
	MessageID string `json:"message_id,omitempty"`
	// ThreadID is the thread the draft belongs to.
	ThreadID string `json:"thread_id,omitempty"`
	// Snippet is a short preview of the message text.
	Snippet string `json:"snippet,omitempty"`
}
