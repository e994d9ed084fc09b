// Package parser interprets energy-matrix worksheets: it normalizes cells,
// rebuilds multi-column fields, classifies rows and extracts records.
package parser

import (
	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// Grid is read access to a worksheet.
type Grid interface {
	// Cell returns the raw value at col/row (both 1-based), or nil when empty.
	Cell(col Column, row int) interface{}
	// LastRow returns the last row holding any value, or 0 for an empty sheet.
	LastRow() int
}

type cellKey struct {
	col Column
	row int
}

// MemoryGrid is a sparse in-memory Grid.
type MemoryGrid struct {
	cells   map[cellKey]interface{}
	lastRow int
}

// NewMemoryGrid returns an empty grid.
func NewMemoryGrid() *MemoryGrid {
	return &MemoryGrid{cells: make(map[cellKey]interface{})}
}

// Set stores v at col/row. A nil v clears the cell.
func (g *MemoryGrid) Set(col Column, row int, v interface{}) *MemoryGrid {
	k := cellKey{col, row}
	if v == nil {
		delete(g.cells, k)
		if row == g.lastRow {
			g.recomputeLastRow()
		}
		return g
	}
	g.cells[k] = v
	if row > g.lastRow {
		g.lastRow = row
	}
	return g
}

// SetCell stores v at an A1-style reference such as "AA12".
func (g *MemoryGrid) SetCell(ref string, v interface{}) error {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return errors.Wrapf(err, "invalid cell reference %q", ref)
	}
	g.Set(Column(col), row, v)
	return nil
}

// Cell implements Grid.
func (g *MemoryGrid) Cell(col Column, row int) interface{} {
	return g.cells[cellKey{col, row}]
}

// LastRow implements Grid.
func (g *MemoryGrid) LastRow() int {
	return g.lastRow
}

func (g *MemoryGrid) recomputeLastRow() {
	g.lastRow = 0
	for k := range g.cells {
		if k.row > g.lastRow {
			g.lastRow = k.row
		}
	}
}
