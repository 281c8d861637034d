package sheets

import (
	"context"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/gateways/google"
)

// SheetName resolves a numeric sheet ID to its title by fetching the
// spreadsheet's sheet list. Without the name cache this fetch happens
// on every call; enable WithNameCache when repeated resolution
// dominates and external structural changes are not a concern.
func (g *Gateway) SheetName(ctx context.Context, ref domain.SheetRef) (string, error) {
	if g.nameCache != nil {
		if name, ok := g.nameCache[ref]; ok {
			return name, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	sp, err := g.sess.Sheets().Spreadsheets.Get(ref.SpreadsheetID).
		Fields("sheets.properties.sheetId", "sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return "", google.WrapError("spreadsheets.get", err)
	}

	name, ok := titleForSheetID(sp, ref.SheetID)
	if !ok {
		return "", fmt.Errorf("%w: sheet %d in spreadsheet %s", domain.ErrNotFound, ref.SheetID, ref.SpreadsheetID)
	}

	if g.nameCache != nil {
		g.nameCache[ref] = name
	}
	return name, nil
}

// titleForSheetID scans the spreadsheet's sheet list for the matching
// numeric ID.
func titleForSheetID(sp *sheetsapi.Spreadsheet, sheetID int64) (string, bool) {
	for _, sh := range sp.Sheets {
		if sh.Properties != nil && sh.Properties.SheetId == sheetID {
			return sh.Properties.Title, true
		}
	}
	return "", false
}

// invalidateNames drops all memoized sheet names. Called after every
// structural mutation issued through this gateway.
func (g *Gateway) invalidateNames() {
	if g.nameCache == nil {
		return
	}
	for k := range g.nameCache {
		delete(g.nameCache, k)
	}
}
