package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadGrid(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "B11", "EQ-1"))
	require.NoError(t, f.SetCellValue(sheetName, "G11", 100))
	require.NoError(t, f.SetCellValue(sheetName, "H11", 200.5))
	require.NoError(t, f.SetCellValue(sheetName, "I11", true))
	require.NoError(t, f.SetCellValue(sheetName, "J11", "007"))
	require.NoError(t, f.SetCellValue(sheetName, "AA13", "Abrir"))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer f2.Close()

	g, err := LoadGrid(f2, sheetName)
	require.NoError(t, err)

	assert.Equal(t, sheetName, g.Name())
	assert.Equal(t, 13, g.LastRow())
	assert.Equal(t, "EQ-1", g.Cell(MustColumn("B"), 11))
	assert.Equal(t, int64(100), g.Cell(MustColumn("G"), 11))
	assert.Equal(t, 200.5, g.Cell(MustColumn("H"), 11))
	assert.Equal(t, true, g.Cell(MustColumn("I"), 11))
	assert.Equal(t, "007", g.Cell(MustColumn("J"), 11), "text that looks numeric stays text")
	assert.Equal(t, "Abrir", g.Cell(MustColumn("AA"), 13))
	assert.Nil(t, g.Cell(MustColumn("C"), 11))
	assert.Nil(t, g.Cell(MustColumn("B"), 12))
	assert.Nil(t, g.Cell(MustColumn("B"), 500))
	assert.Nil(t, g.Cell(0, 11))
}

func TestLoadGridMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := LoadGrid(f, "nope")
	assert.Error(t, err)
}

func TestLoadGridExtract(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	s := "Sheet1"
	require.NoError(t, f.SetCellValue(s, "B11", "EQ-1"))
	require.NoError(t, f.SetCellValue(s, "M11", "Valve A"))
	require.NoError(t, f.SetCellValue(s, "Z12", "Open valve"))
	require.NoError(t, f.SetCellValue(s, "A13", "LEGENDA"))
	require.NoError(t, f.MergeCell(s, "B11", "B12"))

	g, err := LoadGrid(f, s)
	require.NoError(t, err)

	got := ExtractSheet(g, s, "m.xlsx", DefaultLayout())
	require.Len(t, got.Records, 2)
	assert.Equal(t, "EQ-1", deref(got.Records[1].EquipmentTag))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		cellType excelize.CellType
		expected interface{}
	}{
		{"123", excelize.CellTypeUnset, int64(123)},
		{"123.45", excelize.CellTypeNumber, 123.45},
		{"-100", excelize.CellTypeUnset, int64(-100)},
		{"1", excelize.CellTypeBool, true},
		{"0", excelize.CellTypeBool, false},
		{"123", excelize.CellTypeSharedString, "123"},
		{"hello", excelize.CellTypeUnset, "hello"},
		{"#N/A", excelize.CellTypeError, "#N/A"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input, tt.cellType)
		assert.Equal(t, tt.expected, result, "parseValue(%q, %v)", tt.input, tt.cellType)
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, Column(1), MustColumn("A"))
	assert.Equal(t, Column(27), MustColumn("AA"))
	assert.Equal(t, "AA", Column(27).String())
	_, err := ParseColumn("1A")
	assert.Error(t, err)
	assert.Panics(t, func() { MustColumn("") })
}

func TestDefaultLayoutRelevantColumns(t *testing.T) {
	l := DefaultLayout()
	var names []string
	for _, c := range l.RelevantColumns() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{
		"B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L",
		"M", "N", "O", "P", "Q", "R", "S", "T", "U", "Z", "AA",
	}, names)
	assert.Equal(t, DefaultStartRow, l.StartRow)
}
