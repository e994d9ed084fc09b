package parser

import "strings"

// footerSeparator joins marker column texts before keyword matching.
const footerSeparator = " | "

// HasAnyData reports whether any relevant column of row holds a value.
func HasAnyData(g Grid, row int, l Layout) bool {
	for _, c := range l.RelevantColumns() {
		if _, ok := NormalizeCell(g.Cell(c, row)); ok {
			return true
		}
	}
	return false
}

// IsFooter reports whether row starts the non-data footer of a sheet
// (signatures, legend, pagination).
func IsFooter(g Grid, row int, l Layout) bool {
	_, ok := FooterKeyword(g, row, l)
	return ok
}

// FooterKeyword returns the first footer keyword found in the marker columns of row.
//
// Matching is by substring over all marker columns joined together, so a data
// row whose text happens to contain a keyword (e.g. "LAYOUT") also ends the
// region. Callers log the keyword so such cases can be spotted.
func FooterKeyword(g Grid, row int, l Layout) (string, bool) {
	texts := make([]string, 0, len(l.FooterColumns))
	for _, c := range l.FooterColumns {
		if v, ok := NormalizeCell(g.Cell(c, row)); ok {
			texts = append(texts, strings.ToUpper(v))
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	joined := strings.Join(texts, footerSeparator)
	for _, k := range l.FooterKeywords {
		if strings.Contains(joined, k) {
			return k, true
		}
	}
	return "", false
}
