// Package output writes consolidated energy-matrix results.
package output

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
)

const (
	// RecordsSheet holds the consolidated records.
	RecordsSheet = "Consolidado"
	// ErrorsSheet lists files that could not be processed. It is only
	// written when at least one file failed.
	ErrorsSheet = "Erros"

	defaultSheet = "Sheet1"
	colWidth     = 28.0
	sourceWidth  = 36.0
	errorWidth   = 80.0
)

// ErrorHeaders is the header row of the errors sheet.
var ErrorHeaders = []string{"Arquivo", "Erro"}

// WriteWorkbook saves c as an .xlsx workbook at path, creating parent directories.
func WriteWorkbook(path string, c *models.Consolidated) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create output directory %s", dir)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, RecordsSheet); err != nil {
		return errors.Wrap(err, "rename default sheet")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}

	if err := writeRecords(f, headerStyle, c.Records); err != nil {
		return err
	}
	if len(c.Report.Failures) > 0 {
		if err := writeFailures(f, headerStyle, c.Report.Failures); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

func writeRecords(f *excelize.File, headerStyle int, records []models.Record) error {
	sw, err := f.NewStreamWriter(RecordsSheet)
	if err != nil {
		return errors.Wrap(err, "create stream writer")
	}
	headers := models.Headers()
	if err := sw.SetColWidth(1, 1, sourceWidth); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := sw.SetColWidth(2, len(headers), colWidth); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return errors.Wrap(err, "freeze header row")
	}

	if err := sw.SetRow("A1", headerRow(headers, headerStyle)); err != nil {
		return errors.Wrap(err, "write header row")
	}
	for i := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, records[i].Cells()); err != nil {
			return errors.Wrapf(err, "write record %d", i+1)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "flush records sheet")
	}
	return nil
}

func writeFailures(f *excelize.File, headerStyle int, failures []models.FileFailure) error {
	if _, err := f.NewSheet(ErrorsSheet); err != nil {
		return errors.Wrap(err, "create errors sheet")
	}
	sw, err := f.NewStreamWriter(ErrorsSheet)
	if err != nil {
		return errors.Wrap(err, "create stream writer")
	}
	if err := sw.SetColWidth(1, 1, sourceWidth); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := sw.SetColWidth(2, 2, errorWidth); err != nil {
		return errors.Wrap(err, "set column width")
	}
	if err := sw.SetRow("A1", headerRow(ErrorHeaders, headerStyle)); err != nil {
		return errors.Wrap(err, "write header row")
	}
	for i, fl := range failures {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{fl.File, fl.Error}); err != nil {
			return errors.Wrapf(err, "write failure %d", i+1)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "flush errors sheet")
	}
	return nil
}

func headerRow(headers []string, style int) []interface{} {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = excelize.Cell{Value: h, StyleID: style}
	}
	return row
}
