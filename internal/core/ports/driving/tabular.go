package driving

import (
	"context"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// TabularService exposes spreadsheet operations.
type TabularService interface {
	// CreateSpreadsheet creates a new spreadsheet and returns its ID.
	CreateSpreadsheet(ctx context.Context, title string) (string, error)

	// AddSheet adds a named sheet (tab) and returns its numeric ID.
	AddSheet(ctx context.Context, spreadsheetID, title string) (int64, error)

	// SheetName resolves a numeric sheet ID to its title.
	SheetName(ctx context.Context, ref domain.SheetRef) (string, error)

	// AppendRecords projects records onto the column order and appends
	// them as rows to the referenced sheet.
	AppendRecords(ctx context.Context, ref domain.SheetRef, columns domain.ColumnOrder, records []domain.Record) error

	// ReadRange reads cell values for 1-indexed row bounds and optional
	// column bounds (end column exclusive).
	ReadRange(ctx context.Context, ref domain.SheetRef, startRow, endRow, startCol, endCol int64) ([][]any, error)

	// ReadAll reads the whole sheet. The first row is the header; every
	// following row is right-padded with empty cells to the header width.
	ReadAll(ctx context.Context, ref domain.SheetRef) (header []string, rows [][]any, err error)

	// AddTable creates a table from a schema: a header row, one blank
	// row, fixed column widths and wrapped text.
	AddTable(ctx context.Context, ref domain.SheetRef, name string, schema domain.TableSchema, startRow, startCol int64) error
}
