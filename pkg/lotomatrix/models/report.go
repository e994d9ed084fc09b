package models

import "time"

// FileResult is the outcome of processing one input workbook.
type FileResult struct {
	// File is the workbook file name (no path).
	File string `json:"file"`
	// Path is the path the workbook was discovered at.
	Path string `json:"path"`
	// Converted is true when the file went through legacy-format conversion.
	Converted bool `json:"converted,omitempty"`
	// Sheets holds per-sheet extraction details.
	Sheets []SheetExtraction `json:"sheets,omitempty"`
	// Err is set when the whole file could not be processed.
	Err error `json:"-"`
	// Error mirrors Err for serialization.
	Error string `json:"error,omitempty"`
}

// Records returns the records of every sheet in sheet order.
func (r *FileResult) Records() []Record {
	var out []Record
	for _, s := range r.Sheets {
		out = append(out, s.Records...)
	}
	return out
}

// FileFailure pairs a file name with the error that made it unprocessable.
type FileFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// RunReport summarizes a batch run.
type RunReport struct {
	RunID      string        `json:"run_id,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Found      int           `json:"files_found"`
	Processed  int           `json:"files_processed"`
	Converted  int           `json:"files_converted"`
	Records    int           `json:"records"`
	Failures   []FileFailure `json:"failures,omitempty"`
}

// Failed returns the number of files that could not be processed.
func (r *RunReport) Failed() int {
	return len(r.Failures)
}

// Consolidated is the merged output of a batch run.
type Consolidated struct {
	Records []Record  `json:"records"`
	Report  RunReport `json:"report"`
}
