package sheets

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

// ProjectRows converts mapping-shaped records into positional rows
// aligned to the column order. Per-cell policy:
//   - field absent from the record: empty string
//   - nil value: empty string
//   - string list: elements joined with a single space
//   - anything else passes through unchanged (numbers and booleans are
//     not stringified; the write API receives them raw)
//
// A list holding a non-string element fails with ErrNonStringListValue
// rather than being silently stringified. Pure transform: the input
// records are never modified.
func ProjectRows(columns domain.ColumnOrder, records []domain.Record) ([][]any, error) {
	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			val, ok := rec[col]
			if !ok || val == nil {
				row[j] = ""
				continue
			}
			cell, err := projectCell(val)
			if err != nil {
				return nil, fmt.Errorf("record %d, column %q: %w", i, col, err)
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func projectCell(val any) (any, error) {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, " "), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", domain.ErrNonStringListValue, i, item)
			}
			parts[i] = s
		}
		return strings.Join(parts, " "), nil
	default:
		return val, nil
	}
}
