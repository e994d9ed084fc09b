package models

// SheetExtraction is the outcome of scanning one worksheet.
type SheetExtraction struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Records holds the kept records in ascending row order.
	Records []Record `json:"records"`
	// FooterRow is the row that ended the data region, or 0 if none was found.
	FooterRow int `json:"footer_row,omitempty"`
	// FooterKeyword is the keyword that matched on FooterRow.
	FooterKeyword string `json:"footer_keyword,omitempty"`
	// BlankRows counts rows skipped because no relevant column had a value.
	BlankRows int `json:"blank_rows"`
	// DroppedRows counts rows discarded for lacking energy-source data.
	DroppedRows int `json:"dropped_rows"`
}
