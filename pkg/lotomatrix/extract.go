package lotomatrix

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/lotomatrix-go/internal/logger"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/parser"
)

// ExtractFile extracts energy-matrix records from one workbook.
//
// Legacy .xls files go through opts.Converter first. Only the first worksheet
// is read unless opts.AllSheets is set. A returned error means the whole file
// was unprocessable; the result still carries the file name and the error.
func ExtractFile(ctx context.Context, path string, opts Options) (*models.FileResult, error) {
	name := filepath.Base(path)
	res := &models.FileResult{File: name, Path: path}

	fail := func(stage string, err error) (*models.FileResult, error) {
		werr := NewWorkbookError(name, stage, err)
		res.Err = werr
		res.Error = werr.Error()
		return res, werr
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fail(StageOpen, errors.Wrapf(ErrFileNotFound, "%s", path))
	}

	readable := path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
	case ".xls":
		if opts.Converter == nil {
			return fail(StageConvert, ErrConverterUnavailable)
		}
		converted, err := opts.Converter.Convert(ctx, path)
		if err != nil {
			return fail(StageConvert, err)
		}
		readable = converted
		res.Converted = true
	default:
		return fail(StageOpen, errors.Wrapf(ErrInvalidFormat, "unsupported extension %q", filepath.Ext(path)))
	}

	f, err := excelize.OpenFile(readable)
	if err != nil {
		return fail(StageOpen, errors.Mark(errors.Wrap(err, "open workbook"), ErrInvalidFormat))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fail(StageRead, errors.Wrap(ErrInvalidFormat, "workbook has no worksheets"))
	}
	if !opts.AllSheets {
		sheets = sheets[:1]
	}

	layout := opts.layout()
	log := opts.logger()
	for _, sheetName := range sheets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		g, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			return fail(StageRead, err)
		}
		sx := parser.ExtractSheet(g, sheetName, name, layout)
		if sx.FooterRow > 0 {
			log.Debugw("Footer row ends data region",
				logger.FieldFile, name,
				logger.FieldSheet, sheetName,
				logger.FieldRow, sx.FooterRow,
				logger.FieldKeyword, sx.FooterKeyword)
		}
		log.Debugw("Sheet extracted",
			logger.FieldFile, name,
			logger.FieldSheet, sheetName,
			logger.FieldCount, len(sx.Records),
			"blank_rows", sx.BlankRows,
			"dropped_rows", sx.DroppedRows)
		res.Sheets = append(res.Sheets, sx)
	}
	return res, nil
}
