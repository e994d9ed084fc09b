package lotomatrix

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a supported workbook format.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrInputDirNotFound indicates the input directory does not exist.
var ErrInputDirNotFound = errors.New("input directory not found")

// ErrNoInputFiles indicates the input directory holds no workbooks.
var ErrNoInputFiles = errors.New("no .xls/.xlsx/.xlsm files found")

// ErrConverterUnavailable indicates a legacy .xls file was found but no converter is configured.
var ErrConverterUnavailable = errors.New("no converter configured for .xls files")

// Workbook processing stages reported by WorkbookError.
const (
	StageConvert = "convert"
	StageOpen    = "open"
	StageRead    = "read"
)

// WorkbookError represents a failure that made a whole workbook unprocessable.
type WorkbookError struct {
	File  string
	Stage string // "convert", "open", "read"
	Err   error
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.File, e.Err)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}

// NewWorkbookError creates a new WorkbookError.
func NewWorkbookError(file, stage string, err error) *WorkbookError {
	return &WorkbookError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
