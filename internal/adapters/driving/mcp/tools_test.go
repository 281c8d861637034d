package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	s, err := NewServer(ports)
	require.NoError(t, err)
	return s
}

func TestNewServerValidatesPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingTabularFactory)

	ports := testPorts(&fakeTabular{}, &fakeStorage{}, &fakeMessaging{})
	ports.Messaging = nil
	_, err = NewServer(ports)
	assert.ErrorIs(t, err, ErrMissingMessagingFactory)
}

func TestHandleAppend(t *testing.T) {
	tab := &fakeTabular{}
	s := newTestServer(t, testPorts(tab, &fakeStorage{}, &fakeMessaging{}))

	input := AppendInput{
		SpreadsheetID: "sp-1",
		SheetID:       7,
		Columns:       []string{"name", "count"},
		Records: []domain.Record{
			{"name": "a", "count": 1},
			{"name": "b"},
		},
	}

	_, out, err := s.handleAppend(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Appended)
	assert.Equal(t, domain.SheetRef{SpreadsheetID: "sp-1", SheetID: 7}, tab.appendRef)
	assert.Equal(t, domain.ColumnOrder{"name", "count"}, tab.appendColumns)
}

func TestHandleAppendError(t *testing.T) {
	tab := &fakeTabular{appendErr: errors.New("boom")}
	s := newTestServer(t, testPorts(tab, &fakeStorage{}, &fakeMessaging{}))

	_, _, err := s.handleAppend(context.Background(), nil, AppendInput{})
	assert.Error(t, err)
}

func TestHandleRead(t *testing.T) {
	tab := &fakeTabular{
		readHeader: []string{"a", "b"},
		readRows:   [][]any{{"1", "2"}},
	}
	s := newTestServer(t, testPorts(tab, &fakeStorage{}, &fakeMessaging{}))

	_, out, err := s.handleRead(context.Background(), nil, ReadInput{SpreadsheetID: "sp-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Header)
	assert.Equal(t, [][]any{{"1", "2"}}, out.Rows)
}

func TestHandleUpload(t *testing.T) {
	stor := &fakeStorage{fileID: "file-1"}
	s := newTestServer(t, testPorts(&fakeTabular{}, stor, &fakeMessaging{}))

	_, out, err := s.handleUpload(context.Background(), nil, UploadInput{
		Path: "/tmp/report.csv",
		Name: "report.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "file-1", out.FileID)
	assert.Equal(t, "/tmp/report.csv", stor.uploadPath)
	assert.Equal(t, "report.csv", stor.uploadName)
}

func TestHandleDraft(t *testing.T) {
	msg := &fakeMessaging{draft: &domain.Draft{ID: "d-1", MessageID: "m-1"}}
	s := newTestServer(t, testPorts(&fakeTabular{}, &fakeStorage{}, msg))

	_, out, err := s.handleDraft(context.Background(), nil, DraftInput{
		To:      []string{"a@example.com"},
		Subject: "hi",
		Body:    "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "d-1", out.DraftID)
	assert.Equal(t, "m-1", out.MessageID)
	assert.False(t, msg.sent)
	assert.Equal(t, "hi", msg.env.Subject)
}

func TestHandleDraftSend(t *testing.T) {
	msg := &fakeMessaging{msgID: "m-2"}
	s := newTestServer(t, testPorts(&fakeTabular{}, &fakeStorage{}, msg))

	_, out, err := s.handleDraft(context.Background(), nil, DraftInput{
		To:   []string{"a@example.com"},
		Send: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "m-2", out.MessageID)
	assert.Empty(t, out.DraftID)
	assert.True(t, msg.sent)
}
