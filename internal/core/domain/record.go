package domain

// Record is a mapping-shaped row: field name to JSON-like value.
// Values may be strings, numbers, booleans, nil, or string lists.
type Record map[string]any

// ColumnOrder is an ordered list of column names. It defines the
// positional mapping from a Record to a spreadsheet row: the value of
// the field named by position i lands in cell i.
type ColumnOrder []string

// SheetRef addresses one sheet within a spreadsheet by numeric ID.
// The human-readable sheet title is resolved on demand.
type SheetRef struct {
	// SpreadsheetID is the spreadsheet document identifier.
	SpreadsheetID string `json:"spreadsheet_id"`
	// SheetID is the numeric sheet (tab) identifier within the spreadsheet.
	SheetID int64 `json:"sheet_id"`
}
