package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// SheetGrid is a Grid loaded from an excelize worksheet.
type SheetGrid struct {
	name    string
	rows    [][]interface{}
	lastRow int
}

// LoadGrid reads every cell of sheetName into memory.
// Numeric cells become int64 or float64, booleans become bool and everything
// else stays a string, so number rendering does not depend on cell formats.
// Numbers under a date or time format become time.Time, or a time of day
// when the serial is below one day.
func LoadGrid(f *excelize.File, sheetName string) (*SheetGrid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read rows of sheet %q", sheetName)
	}
	dates := newDateStyles(f)

	g := &SheetGrid{
		name:    sheetName,
		rows:    make([][]interface{}, len(rows)),
		lastRow: lastPopulatedRow(rows),
	}
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		values := make([]interface{}, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				values[colIdx] = cellValue
				continue
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				cellType = excelize.CellTypeInlineString
			}
			v := parseValue(cellValue, cellType)
			if serial, ok := numeric(v); ok && dates.isDate(sheetName, cellName) {
				v = excelDate(serial, dates.date1904)
			}
			values[colIdx] = v
		}
		g.rows[rowIdx] = values
	}
	return g, nil
}

// Name returns the worksheet name.
func (g *SheetGrid) Name() string {
	return g.name
}

// Cell implements Grid.
func (g *SheetGrid) Cell(col Column, row int) interface{} {
	if row < 1 || row > len(g.rows) {
		return nil
	}
	r := g.rows[row-1]
	if col < 1 || int(col) > len(r) {
		return nil
	}
	return r[col-1]
}

// LastRow implements Grid.
func (g *SheetGrid) LastRow() int {
	return g.lastRow
}

// parseValue converts a raw cell string according to its stored type.
// Untyped cells are numbers in OOXML; anything that fails to parse stays text.
func parseValue(s string, t excelize.CellType) interface{} {
	switch t {
	case excelize.CellTypeBool:
		return s == "1" || strings.EqualFold(s, "true")
	case excelize.CellTypeDate:
		for _, layout := range isoLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// isoLayouts are the forms of an ISO 8601 date cell (t="d").
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func numeric(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// excelDate converts a serial date, rounded to the millisecond.
func excelDate(serial float64, date1904 bool) interface{} {
	if serial >= 0 && serial < 1 {
		ms := math.Round(serial * 24 * 60 * 60 * 1000)
		if ms < 24*60*60*1000 {
			return TimeOfDay(time.Duration(ms) * time.Millisecond)
		}
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return serial
	}
	return t.Round(time.Millisecond)
}
