package sheets

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 1-based column number to its A1 letters:
// 1 is "A", 26 is "Z", 27 is "AA". Numbers below 1 yield "".
func ColumnLetter(n int) string {
	if n < 1 {
		return ""
	}
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('A'+n%26))
		n /= 26
	}
	// digits were produced least significant first
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ColumnNumber converts A1 column letters back to a 1-based column number.
// Lower case is accepted. Invalid input yields 0.
func ColumnNumber(letters string) int {
	if letters == "" {
		return 0
	}
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A') + 1
	}
	return n
}

// Cell returns the A1 address of a 1-based column and row, e.g. Cell(21, 50) is "U50".
func Cell(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

// Range qualifies an A1 cell range with a worksheet title. The title is always
// quoted because week titles contain spaces and slashes; embedded single quotes
// are doubled. An empty cells argument addresses the whole worksheet.
func Range(sheet, cells string) string {
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

// CellRange builds a qualified range from numeric bounds, all 1-based and
// inclusive: CellRange("Week", 1, 12, 21, 50) is "'Week'!A12:U50".
func CellRange(sheet string, col1, row1, col2, row2 int) string {
	return Range(sheet, Cell(col1, row1)+":"+Cell(col2, row2))
}
