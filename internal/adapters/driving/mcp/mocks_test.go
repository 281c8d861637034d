package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
)

// fakeTabular records calls and plays back canned results.
type fakeTabular struct {
	appendRef     domain.SheetRef
	appendColumns domain.ColumnOrder
	appendRecords []domain.Record
	appendErr     error

	readHeader []string
	readRows   [][]any
	readErr    error
}

func (f *fakeTabular) CreateSpreadsheet(context.Context, string) (string, error) { return "", nil }
func (f *fakeTabular) AddSheet(context.Context, string, string) (int64, error)  { return 0, nil }
func (f *fakeTabular) SheetName(context.Context, domain.SheetRef) (string, error) {
	return "", nil
}

func (f *fakeTabular) AppendRecords(_ context.Context, ref domain.SheetRef, columns domain.ColumnOrder, records []domain.Record) error {
	f.appendRef = ref
	f.appendColumns = columns
	f.appendRecords = records
	return f.appendErr
}

func (f *fakeTabular) ReadRange(context.Context, domain.SheetRef, int64, int64, int64, int64) ([][]any, error) {
	return nil, nil
}

func (f *fakeTabular) ReadAll(context.Context, domain.SheetRef) ([]string, [][]any, error) {
	return f.readHeader, f.readRows, f.readErr
}

func (f *fakeTabular) AddTable(context.Context, domain.SheetRef, string, domain.TableSchema, int64, int64) error {
	return nil
}

// fakeStorage records the upload request.
type fakeStorage struct {
	uploadPath string
	uploadName string
	fileID     string
	uploadErr  error
}

func (f *fakeStorage) CreateFolder(context.Context, string, string) (string, error) { return "", nil }

func (f *fakeStorage) Upload(context.Context, io.Reader, driving.UploadSpec, domain.ProgressFunc) (string, error) {
	return f.fileID, f.uploadErr
}

func (f *fakeStorage) UploadFile(_ context.Context, path, name, _, _ string, _ domain.ProgressFunc) (string, error) {
	f.uploadPath = path
	f.uploadName = name
	return f.fileID, f.uploadErr
}

// fakeMessaging records the envelope and mode.
type fakeMessaging struct {
	env      domain.Envelope
	sent     bool
	draft    *domain.Draft
	msgID    string
	draftErr error
	sendErr  error
}

func (f *fakeMessaging) CreateDraft(_ context.Context, env domain.Envelope) (*domain.Draft, error) {
	f.env = env
	return f.draft, f.draftErr
}

func (f *fakeMessaging) UpdateDraft(context.Context, string, domain.Envelope) (*domain.Draft, error) {
	return nil, nil
}

func (f *fakeMessaging) GetDraft(context.Context, string) (*domain.Draft, error) { return nil, nil }
func (f *fakeMessaging) ListDrafts(context.Context, int64) ([]domain.Draft, error) {
	return nil, nil
}
func (f *fakeMessaging) DeleteDraft(context.Context, string) error { return nil }
func (f *fakeMessaging) SendDraft(context.Context, string) (string, error) {
	return "", nil
}

func (f *fakeMessaging) Send(_ context.Context, env domain.Envelope) (string, error) {
	f.env = env
	f.sent = true
	return f.msgID, f.sendErr
}

// testPorts wires the fakes into a Ports value.
func testPorts(tab *fakeTabular, stor *fakeStorage, msg *fakeMessaging) *Ports {
	return &Ports{
		Tabular: func(context.Context) (driving.TabularService, error) {
			return tab, nil
		},
		Storage: func(context.Context) (driving.StorageService, error) {
			return stor, nil
		},
		Messaging: func(context.Context) (driving.MessagingService, error) {
			return msg, nil
		},
	}
}
