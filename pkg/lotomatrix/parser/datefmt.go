package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// builtinDateFormats are the built-in number format IDs that display dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	45: true, 46: true, 47: true,
}

var (
	// Quoted text, escaped or padding characters and bracketed sections
	// such as colors and locales carry no date tokens.
	fmtLiterals  = regexp.MustCompile(`"[^"]*"|\\.|_.|\*.|\[[^\]]*\]`)
	fmtDateToken = regexp.MustCompile(`[dmyhsDMYHS]`)
)

// IsDateFormat reports whether a number format code displays a date or time.
// Only the first section, used for positive numbers, is inspected.
func IsDateFormat(code string) bool {
	if code == "" || strings.EqualFold(code, "General") || code == "@" {
		return false
	}
	section := strings.SplitN(code, ";", 2)[0]
	return fmtDateToken.MatchString(fmtLiterals.ReplaceAllString(section, ""))
}

// dateStyles caches, per style index, whether a style formats dates.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	byStyle  map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, byStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateStyles) isDate(sheet, cell string) bool {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if v, ok := d.byStyle[idx]; ok {
		return v
	}
	v := false
	if st, err := d.f.GetStyle(idx); err == nil && st != nil {
		if st.CustomNumFmt != nil {
			v = IsDateFormat(*st.CustomNumFmt)
		} else {
			v = builtinDateFormats[st.NumFmt]
		}
	}
	d.byStyle[idx] = v
	return v
}

// TimeOfDay is a cell holding only a time. It prints as HH:MM:SS.
type TimeOfDay time.Duration

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	s := fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	if us := (d % time.Second) / time.Microsecond; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// formatDateTime renders t as YYYY-MM-DD HH:MM:SS with microseconds when set.
func formatDateTime(t time.Time) string {
	s := t.Format("2006-01-02 15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}
