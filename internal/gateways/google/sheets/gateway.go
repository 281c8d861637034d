// Package sheets is the tabular data gateway. It translates
// mapping-shaped records into positional rows, manages named-sheet
// addressing, and issues batched structural mutations (add sheet, add
// table, set column width, set text wrap) against the Sheets API.
package sheets

import (
	"context"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// Ensure Gateway implements the driving port.
var _ driving.TabularService = (*Gateway)(nil)

// Gateway is the tabular data gateway. Like the Session it wraps, a
// Gateway is bound to one call scope and must not be shared across
// goroutines.
type Gateway struct {
	sess    *google.Session
	limiter *google.RateLimiter

	// nameCache memoizes sheet-name resolution when enabled. Structural
	// mutations issued through this gateway invalidate it.
	nameCache map[domain.SheetRef]string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithNameCache enables memoized sheet-name resolution. The cache is
// invalidated by every structural mutation issued through the same
// gateway; mutations made elsewhere are not observed.
func WithNameCache() Option {
	return func(g *Gateway) {
		g.nameCache = make(map[domain.SheetRef]string)
	}
}

// WithRateLimiter replaces the default Sheets rate limiter.
func WithRateLimiter(l *google.RateLimiter) Option {
	return func(g *Gateway) {
		g.limiter = l
	}
}

// NewGateway creates a tabular data gateway over the session.
func NewGateway(sess *google.Session, opts ...Option) *Gateway {
	g := &Gateway{
		sess:    sess,
		limiter: google.NewRateLimiter(google.ServiceSheets),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateSpreadsheet creates a new spreadsheet and returns its ID.
func (g *Gateway) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	sp, err := g.sess.Sheets().Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
	}).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return "", google.WrapError("spreadsheets.create", err)
	}

	g.invalidateNames()
	logger.Debug("created spreadsheet %s (%q)", sp.SpreadsheetId, title)
	return sp.SpreadsheetId, nil
}

// AddSheet adds a named sheet (tab) to a spreadsheet and returns its
// numeric sheet ID.
func (g *Gateway) AddSheet(ctx context.Context, spreadsheetID, title string) (int64, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	resp, err := g.sess.Sheets().Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, google.WrapError("sheets.addSheet", err)
	}

	g.invalidateNames()

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("sheets.addSheet: malformed reply for %q", title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// AppendRecords projects records onto the column order and appends the
// resulting rows after the last table row of the referenced sheet.
// Values are written RAW: numbers and booleans reach the API untouched.
func (g *Gateway) AppendRecords(ctx context.Context, ref domain.SheetRef, columns domain.ColumnOrder, records []domain.Record) error {
	rows, err := ProjectRows(columns, records)
	if err != nil {
		return err
	}

	name, err := g.SheetName(ctx, ref)
	if err != nil {
		return err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err = g.sess.Sheets().Spreadsheets.Values.Append(ref.SpreadsheetID, quoteSheetName(name), &sheetsapi.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return google.WrapError("sheets.values.append", err)
	}

	logger.Debug("appended %d rows to %s (sheet %d)", len(rows), ref.SpreadsheetID, ref.SheetID)
	return nil
}

// AddTable creates a table from the schema at the given 1-indexed
// start position: a header row plus one blank row, then a column width
// update, then a text wrap update. The three mutations are issued
// independently and are not rolled back; when a later one fails the
// earlier ones stay applied and the failure surfaces as
// *PartialApplyError naming the applied and failed steps.
func (g *Gateway) AddTable(ctx context.Context, ref domain.SheetRef, name string, schema domain.TableSchema, startRow, startCol int64) error {
	table, width, wrap, err := BuildTableRequests(ref.SheetID, name, schema, startRow, startCol)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		req  *sheetsapi.Request
	}{
		{"addTable", table},
		{"updateDimensionProperties", width},
		{"repeatCell.wrapStrategy", wrap},
	}

	var applied []string
	for _, step := range steps {
		if err := g.batchUpdate(ctx, ref.SpreadsheetID, step.req); err != nil {
			if len(applied) == 0 {
				return err
			}
			return &PartialApplyError{
				Applied: append([]string(nil), applied...),
				Failed:  step.name,
				Err:     err,
			}
		}
		applied = append(applied, step.name)
	}

	g.invalidateNames()
	logger.Debug("created table %q on %s (sheet %d)", name, ref.SpreadsheetID, ref.SheetID)
	return nil
}

// batchUpdate issues a single structural mutation.
func (g *Gateway) batchUpdate(ctx context.Context, spreadsheetID string, req *sheetsapi.Request) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := g.sess.Sheets().Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{req},
	}).Context(ctx).Do()
	if err != nil {
		return google.WrapError("sheets.batchUpdate", err)
	}
	return nil
}
