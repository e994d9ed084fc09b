package parser

import "strings"

// lastPopulatedRow returns the 1-based index of the last row holding a
// non-blank cell, or 0 when every row is blank.
func lastPopulatedRow(rows [][]string) int {
	for rowIdx := len(rows) - 1; rowIdx >= 0; rowIdx-- {
		if countNonEmptyCells(rows[rowIdx]) > 0 {
			return rowIdx + 1
		}
	}
	return 0
}

// countNonEmptyCells counts cells with non-whitespace content.
func countNonEmptyCells(row []string) int {
	count := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			count++
		}
	}
	return count
}
