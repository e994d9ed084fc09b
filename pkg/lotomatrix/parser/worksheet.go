package parser

import (
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
)

// ExtractSheet scans g from l.StartRow to its last row and returns the
// energy-source records it holds, in row order.
//
// Scanning stops at the first footer row. Blank rows are skipped. The
// equipment tag and description are filled down from earlier rows of the
// same sheet; the other fields come from the current row only. Rows without
// any energy-source field are dropped.
func ExtractSheet(g Grid, sheet, source string, l Layout) models.SheetExtraction {
	out := models.SheetExtraction{Name: sheet}

	var tag, desc FillDown
	start := l.StartRow
	if start < 1 {
		start = 1
	}

	for row := start; row <= g.LastRow(); row++ {
		if k, ok := FooterKeyword(g, row, l); ok {
			out.FooterRow, out.FooterKeyword = row, k
			break
		}
		if !HasAnyData(g, row, l) {
			out.BlankRows++
			continue
		}

		rec := models.Record{SourceFile: source, Sheet: sheet, Row: row}
		rec.Set(models.EquipmentTag, optional(tag.Update(GroupValue(g, row, l.Columns(models.EquipmentTag), DefaultSeparator))))
		rec.Set(models.EquipmentDescription, optional(desc.Update(GroupValue(g, row, l.Columns(models.EquipmentDescription), DefaultSeparator))))
		for _, f := range models.SourceFields() {
			rec.Set(f, optional(GroupValue(g, row, l.Columns(f), DefaultSeparator)))
		}

		if !rec.HasSourceInfo() {
			out.DroppedRows++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

func optional(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return models.StringPtr(v)
}
