package parser

import (
	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// Column is a 1-based worksheet column index (A = 1).
type Column int

// ParseColumn resolves a column letter such as "B" or "AA".
func ParseColumn(name string) (Column, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid column %q", name)
	}
	return Column(n), nil
}

// MustColumn is like ParseColumn but panics on an invalid name.
// It is meant for package-level layout constants.
func MustColumn(name string) Column {
	c, err := ParseColumn(name)
	if err != nil {
		panic(err)
	}
	return c
}

// MustColumns resolves several column letters, preserving their order.
func MustColumns(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = MustColumn(n)
	}
	return out
}

// String returns the column letter.
func (c Column) String() string {
	name, err := excelize.ColumnNumberToName(int(c))
	if err != nil {
		return "?"
	}
	return name
}
