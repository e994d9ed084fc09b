// Package lotomatrix extracts lockout/tagout energy-matrix records from
// spreadsheet files and consolidates them into one table.
package lotomatrix

import (
	"go.uber.org/zap"

	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/convert"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/parser"
)

// Options configures extraction behavior.
type Options struct {
	// Layout describes the matrix columns. If nil, parser.DefaultLayout is used.
	Layout *parser.Layout
	// AllSheets extracts every worksheet instead of only the first one.
	AllSheets bool
	// Workers is the number of files processed concurrently. Values below 1 mean 1.
	Workers int
	// Converter turns legacy .xls files into .xlsx. If nil, .xls files fail.
	Converter convert.Converter
	// Logger receives progress and diagnostics. If nil, logging is disabled.
	Logger *zap.SugaredLogger
	// Progress, if set, is called before each file is processed.
	// It may be called from several goroutines when Workers > 1.
	Progress func(index, total int, path string)
	// RunID tags the run report and log lines.
	RunID string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
	}
}

func (o Options) layout() parser.Layout {
	if o.Layout != nil {
		return *o.Layout
	}
	return parser.DefaultLayout()
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}
