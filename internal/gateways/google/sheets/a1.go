package sheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-indexed column number to its spreadsheet
// letter using bijective base-26: 1 -> "A", 26 -> "Z", 27 -> "AA".
// There is no zero digit, so the quotient is decremented before each
// division. Defined only for n >= 1.
func ColumnLetter(n int64) string {
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('A'+n%26))
		n /= 26
	}
	// Reverse: digits were produced least significant first.
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ColumnNumber is the inverse of ColumnLetter: "A" -> 1, "Z" -> 26,
// "AA" -> 27. Returns 0 for an empty or non-letter string.
func ColumnNumber(s string) int64 {
	var n int64
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int64(r-'A'+1)
	}
	return n
}

// rangeString builds an A1-style range for 1-indexed row bounds and
// optional 1-indexed column bounds. The end column is exclusive and is
// decremented to the inclusive letter A1 expects. With no column
// bounds the range spans whole rows.
func rangeString(sheetName string, startRow, endRow, startCol, endCol int64) string {
	name := quoteSheetName(sheetName)
	if startCol > 0 && endCol > 0 {
		return fmt.Sprintf("%s!%s%d:%s%d",
			name, ColumnLetter(startCol), startRow, ColumnLetter(endCol-1), endRow)
	}
	return fmt.Sprintf("%s!%d:%d", name, startRow, endRow)
}

// quoteSheetName wraps the sheet name in single quotes when A1 notation
// requires it (spaces or non-alphanumeric characters). Embedded quotes
// are doubled per the A1 convention.
func quoteSheetName(name string) string {
	needsQuote := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			needsQuote = true
		}
	}
	if !needsQuote {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
