package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// AppendInput is the input schema for the sheets_append tool.
type AppendInput struct {
	SpreadsheetID string          `json:"spreadsheet_id" jsonschema:"the spreadsheet document ID"`
	SheetID       int64           `json:"sheet_id" jsonschema:"the numeric sheet (tab) ID"`
	Columns       []string        `json:"columns" jsonschema:"ordered column names defining the positional mapping"`
	Records       []domain.Record `json:"records" jsonschema:"records to append; fields absent from a record become empty cells"`
}

// AppendOutput is the output schema for the sheets_append tool.
type AppendOutput struct {
	Appended int `json:"appended"`
}

// ReadInput is the input schema for the sheets_read tool.
type ReadInput struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"the spreadsheet document ID"`
	SheetID       int64  `json:"sheet_id" jsonschema:"the numeric sheet (tab) ID"`
}

// ReadOutput is the output schema for the sheets_read tool.
type ReadOutput struct {
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
}

// UploadInput is the input schema for the drive_upload tool.
type UploadInput struct {
	Path     string `json:"path" jsonschema:"local file path to upload"`
	Name     string `json:"name,omitempty" jsonschema:"object name in Drive (defaults to the file's base name)"`
	MIMEType string `json:"mime_type,omitempty" jsonschema:"MIME type of the file"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"destination folder ID"`
}

// UploadOutput is the output schema for the drive_upload tool.
type UploadOutput struct {
	FileID string `json:"file_id"`
}

// DraftInput is the input schema for the gmail_create_draft tool.
type DraftInput struct {
	To       []string `json:"to" jsonschema:"recipient email addresses"`
	Cc       []string `json:"cc,omitempty" jsonschema:"cc recipients"`
	Bcc      []string `json:"bcc,omitempty" jsonschema:"bcc recipients"`
	Subject  string   `json:"subject,omitempty" jsonschema:"message subject"`
	Body     string   `json:"body,omitempty" jsonschema:"plain text body"`
	HTMLBody string   `json:"html_body,omitempty" jsonschema:"HTML body"`
	Send     bool     `json:"send,omitempty" jsonschema:"send the message immediately instead of leaving a draft"`
}

// DraftOutput is the output schema for the gmail_create_draft tool.
type DraftOutput struct {
	DraftID   string `json:"draft_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_append",
		Description: "Append records as rows to a spreadsheet sheet",
	}, s.handleAppend)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_read",
		Description: "Read a whole sheet; rows are padded to the header width",
	}, s.handleRead)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_upload",
		Description: "Upload a local file to Drive",
	}, s.handleUpload)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "gmail_create_draft",
		Description: "Create (and optionally send) a Gmail draft",
	}, s.handleDraft)
}

// handleAppend handles the sheets_append tool invocation.
func (s *Server) handleAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AppendInput,
) (*mcp.CallToolResult, AppendOutput, error) {
	svc, err := s.ports.Tabular(ctx)
	if err != nil {
		return nil, AppendOutput{}, err
	}

	ref := domain.SheetRef{SpreadsheetID: input.SpreadsheetID, SheetID: input.SheetID}
	if err := svc.AppendRecords(ctx, ref, domain.ColumnOrder(input.Columns), input.Records); err != nil {
		return nil, AppendOutput{}, err
	}

	return nil, AppendOutput{Appended: len(input.Records)}, nil
}

// handleRead handles the sheets_read tool invocation.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	svc, err := s.ports.Tabular(ctx)
	if err != nil {
		return nil, ReadOutput{}, err
	}

	ref := domain.SheetRef{SpreadsheetID: input.SpreadsheetID, SheetID: input.SheetID}
	header, rows, err := svc.ReadAll(ctx, ref)
	if err != nil {
		return nil, ReadOutput{}, err
	}

	return nil, ReadOutput{Header: header, Rows: rows}, nil
}

// handleUpload handles the drive_upload tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	svc, err := s.ports.Storage(ctx)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	fileID, err := svc.UploadFile(ctx, input.Path, input.Name, input.MIMEType, input.ParentID, nil)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{FileID: fileID}, nil
}

// handleDraft handles the gmail_create_draft tool invocation.
func (s *Server) handleDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DraftInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	svc, err := s.ports.Messaging(ctx)
	if err != nil {
		return nil, DraftOutput{}, err
	}

	env := domain.Envelope{
		To:       input.To,
		Cc:       input.Cc,
		Bcc:      input.Bcc,
		Subject:  input.Subject,
		Body:     input.Body,
		HTMLBody: input.HTMLBody,
	}

	if input.Send {
		msgID, err := svc.Send(ctx, env)
		if err != nil {
			return nil, DraftOutput{}, err
		}
		return nil, DraftOutput{MessageID: msgID}, nil
	}

	draft, err := svc.CreateDraft(ctx, env)
	if err != nil {
		return nil, DraftOutput{}, err
	}
	return nil, DraftOutput{DraftID: draft.ID, MessageID: draft.MessageID}, nil
}
