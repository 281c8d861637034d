package sheets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// DefaultColumnPixelWidth is the width applied to every table column.
const DefaultColumnPixelWidth = 150

// tableNameRe is the allowed table name alphabet. Validated before any
// remote call is made.
var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_ ]+$`)

// ValidateTableName checks a table name against the allowed alphabet
// (letters, digits, underscores and spaces).
func ValidateTableName(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("%w: %q must match %s", domain.ErrInvalidTableName, name, tableNameRe.String())
	}
	return nil
}

// TableID derives the table identifier from its display name:
// lowercased, spaces replaced with underscores.
func TableID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// displayColumnName upper-cases the first rune of a property name.
// Only the first character changes; this is not title-casing.
func displayColumnName(prop string) string {
	r, size := utf8.DecodeRuneInString(prop)
	if r == utf8.RuneError {
		return prop
	}
	return string(unicode.ToUpper(r)) + prop[size:]
}

// columnOrder returns the schema's property names in a stable order.
func columnOrder(schema domain.TableSchema) []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildTableRequests translates a schema into the three structural
// mutations that make up one table: the addTable request covering a
// header row plus one blank row, the column width update, and the text
// wrap update for the header+blank range. startRow and startCol are
// 1-indexed. The three requests are issued independently; see
// Gateway.AddTable for the partial-application contract.
func BuildTableRequests(sheetID int64, name string, schema domain.TableSchema, startRow, startCol int64) (table, width, wrap *sheetsapi.Request, err error) {
	if err := ValidateTableName(name); err != nil {
		return nil, nil, nil, err
	}
	if len(schema) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: schema has no properties", domain.ErrInvalidInput)
	}

	names := columnOrder(schema)

	// Header row plus one blank row, half-open 0-based grid range.
	gridRange := &sheetsapi.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    startRow - 1,
		EndRowIndex:      startRow + 1,
		StartColumnIndex: startCol - 1,
		EndColumnIndex:   startCol - 1 + int64(len(names)),
		ForceSendFields:  []string{"StartRowIndex", "StartColumnIndex"},
	}

	cols := make([]*sheetsapi.TableColumnProperties, len(names))
	for i, prop := range names {
		col := &sheetsapi.TableColumnProperties{
			ColumnIndex:     int64(i),
			ColumnName:      displayColumnName(prop),
			ColumnType:      "TEXT",
			ForceSendFields: []string{"ColumnIndex"},
		}
		if enum := schema[prop].Enum; len(enum) > 0 {
			values := make([]*sheetsapi.ConditionValue, len(enum))
			for j, v := range enum {
				values[j] = &sheetsapi.ConditionValue{UserEnteredValue: v}
			}
			col.ColumnType = "DROPDOWN"
			col.DataValidationRule = &sheetsapi.TableColumnDataValidationRule{
				Condition: &sheetsapi.BooleanCondition{
					Type:   "ONE_OF_LIST",
					Values: values,
				},
			}
		}
		cols[i] = col
	}

	table = &sheetsapi.Request{
		AddTable: &sheetsapi.AddTableRequest{
			Table: &sheetsapi.Table{
				TableId:          TableID(name),
				Name:             name,
				Range:            gridRange,
				ColumnProperties: cols,
			},
		},
	}

	width = &sheetsapi.Request{
		UpdateDimensionProperties: &sheetsapi.UpdateDimensionPropertiesRequest{
			Range: &sheetsapi.DimensionRange{
				SheetId:         sheetID,
				Dimension:       "COLUMNS",
				StartIndex:      gridRange.StartColumnIndex,
				EndIndex:        gridRange.EndColumnIndex,
				ForceSendFields: []string{"StartIndex"},
			},
			Properties: &sheetsapi.DimensionProperties{
				PixelSize: DefaultColumnPixelWidth,
			},
			Fields: "pixelSize",
		},
	}

	wrap = &sheetsapi.Request{
		RepeatCell: &sheetsapi.RepeatCellRequest{
			Range: gridRange,
			Cell: &sheetsapi.CellData{
				UserEnteredFormat: &sheetsapi.CellFormat{
					WrapStrategy: "WRAP",
				},
			},
			Fields: "userEnteredFormat.wrapStrategy",
		},
	}

	return table, width, wrap, nil
}

// PartialApplyError reports a table creation that applied some of its
// structural mutations before one failed. Nothing is rolled back; the
// applied steps remain visible in the spreadsheet.
type PartialApplyError struct {
	// Applied names the mutations that succeeded, in order.
	Applied []string
	// Failed names the mutation that failed.
	Failed string
	// Err is the failure from the remote call.
	Err error
}

// Error implements the error interface.
func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("table partially applied: %s failed after [%s]: %v",
		e.Failed, strings.Join(e.Applied, ", "), e.Err)
}

// Unwrap returns the underlying error.
func (e *PartialApplyError) Unwrap() error {
	return e.Err
}
