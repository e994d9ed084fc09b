package parser

import "strings"

// DefaultSeparator joins the parts of a multi-column field.
const DefaultSeparator = " "

// GroupValue joins the normalized values of cols on row, in column order.
// Empty cells and empty tokens are left out. It returns false when no column
// holds a value.
func GroupValue(g Grid, row int, cols []Column, sep string) (string, bool) {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if v, ok := NormalizeCell(g.Cell(c, row)); ok {
			parts = append(parts, v)
		}
	}
	return joinValid(parts, sep)
}

func joinValid(parts []string, sep string) (string, bool) {
	if len(parts) == 0 {
		return "", false
	}
	out := collapseSpace(strings.Join(parts, sep))
	if out == "" {
		return "", false
	}
	return out, true
}
