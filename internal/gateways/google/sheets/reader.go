package sheets

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
)

// ReadRange reads cell values for 1-indexed row bounds and optional
// 1-indexed column bounds. The end column is exclusive; pass 0 for
// both column bounds to span whole rows.
func (g *Gateway) ReadRange(ctx context.Context, ref domain.SheetRef, startRow, endRow, startCol, endCol int64) ([][]any, error) {
	if startRow < 1 || endRow < startRow {
		return nil, fmt.Errorf("%w: row bounds %d:%d", domain.ErrInvalidInput, startRow, endRow)
	}

	name, err := g.SheetName(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	rng := rangeString(name, startRow, endRow, startCol, endCol)
	resp, err := g.sess.Sheets().Spreadsheets.Values.Get(ref.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError("sheets.values.get", err)
	}

	return resp.Values, nil
}

// ReadAll reads every row of the sheet. The first returned row is the
// header; every following row is right-padded with empty-string cells
// to the header's column count. Rows longer than the header are kept
// at full length, never truncated.
func (g *Gateway) ReadAll(ctx context.Context, ref domain.SheetRef) ([]string, [][]any, error) {
	name, err := g.SheetName(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	resp, err := g.sess.Sheets().Spreadsheets.Values.Get(ref.SpreadsheetID, quoteSheetName(name)).Context(ctx).Do()
	if err != nil {
		return nil, nil, google.WrapError("sheets.values.get", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = fmt.Sprint(cell)
	}

	return header, padRows(resp.Values[1:], len(header)), nil
}

// padRows right-pads each row with empty strings to width. Longer rows
// pass through unchanged.
func padRows(rows [][]any, width int) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			out[i] = row
			continue
		}
		padded := make([]any, width)
		copy(padded, row)
		for j := len(row); j < width; j++ {
			padded[j] = ""
		}
		out[i] = padded
	}
	return out
}
