package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

func TestTitleForSheetID(t *testing.T) {
	sp := &sheetsapi.Spreadsheet{
		Sheets: []*sheetsapi.Sheet{
			{Properties: &sheetsapi.SheetProperties{SheetId: 0, Title: "Sheet1"}},
			{Properties: &sheetsapi.SheetProperties{SheetId: 123456, Title: "Q3 Report"}},
			{Properties: nil},
		},
	}

	name, ok := titleForSheetID(sp, 0)
	assert.True(t, ok)
	assert.Equal(t, "Sheet1", name)

	name, ok = titleForSheetID(sp, 123456)
	assert.True(t, ok)
	assert.Equal(t, "Q3 Report", name)

	_, ok = titleForSheetID(sp, 999)
	assert.False(t, ok)

	_, ok = titleForSheetID(&sheetsapi.Spreadsheet{}, 0)
	assert.False(t, ok)
}

func TestSheetNameCacheHit(t *testing.T) {
	// No session: a cache hit must short-circuit before any remote call.
	g := NewGateway(nil, WithNameCache())
	ref := domain.SheetRef{SpreadsheetID: "sp-1", SheetID: 3}
	g.nameCache[ref] = "Cached Title"

	name, err := g.SheetName(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "Cached Title", name)
}

func TestInvalidateNames(t *testing.T) {
	g := NewGateway(nil, WithNameCache())
	g.nameCache[domain.SheetRef{SpreadsheetID: "sp-1", SheetID: 0}] = "A"
	g.nameCache[domain.SheetRef{SpreadsheetID: "sp-2", SheetID: 7}] = "B"

	g.invalidateNames()

	assert.Empty(t, g.nameCache)
	// The cache stays enabled after invalidation, just empty.
	assert.NotNil(t, g.nameCache)
}

func TestInvalidateNamesWithoutCache(t *testing.T) {
	g := NewGateway(nil)

	g.invalidateNames()
	assert.Nil(t, g.nameCache)
}
