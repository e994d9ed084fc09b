package lotomatrix

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/lotomatrix-go/internal/logger"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
)

// Sink accumulates per-file results into one ordered table and report.
// Results must be added in file discovery order.
type Sink struct {
	records []models.Record
	report  models.RunReport
}

// NewSink creates a sink expecting found files.
func NewSink(found int) *Sink {
	return &Sink{report: models.RunReport{Found: found}}
}

// Add appends the records of res, or records its failure.
// A legacy file counts as converted once its conversion succeeded, even if
// reading it failed afterwards.
func (s *Sink) Add(res *models.FileResult) {
	if res.Converted {
		s.report.Converted++
	}
	if res.Err != nil {
		s.report.Failures = append(s.report.Failures, models.FileFailure{
			File:  res.File,
			Error: res.Err.Error(),
		})
		return
	}
	s.report.Processed++
	s.records = append(s.records, res.Records()...)
	s.report.Records = len(s.records)
}

// Result returns the consolidated table.
func (s *Sink) Result() *models.Consolidated {
	return &models.Consolidated{
		Records: s.records,
		Report:  s.report,
	}
}

// Run extracts every file and consolidates the results in the order of files.
//
// Files are processed by up to opts.Workers goroutines. A file that fails is
// recorded in the report and does not stop the others. Run only returns an
// error when ctx is cancelled.
func Run(ctx context.Context, files []string, opts Options) (*models.Consolidated, error) {
	log := opts.logger()
	if opts.RunID != "" {
		log = log.With(logger.FieldRunID, opts.RunID)
		opts.Logger = log
	}
	started := time.Now()

	results := make([]*models.FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if opts.Progress != nil {
				opts.Progress(i+1, len(files), path)
			}
			fileStart := time.Now()
			res, err := ExtractFile(gctx, path, opts)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			if err != nil {
				log.Warnw("File failed", logger.FieldFile, res.File, logger.FieldError, err.Error())
			} else {
				log.Infow("File processed",
					logger.FieldFile, res.File,
					logger.FieldCount, len(res.Records()),
					"converted", res.Converted,
					logger.FieldDurationMS, time.Since(fileStart).Milliseconds())
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "run cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "run cancelled")
	}

	sink := NewSink(len(files))
	for _, res := range results {
		sink.Add(res)
	}
	out := sink.Result()
	out.Report.RunID = opts.RunID
	out.Report.StartedAt = started
	out.Report.FinishedAt = time.Now()

	log.Infow("Run complete",
		"files_found", out.Report.Found,
		"files_processed", out.Report.Processed,
		"files_converted", out.Report.Converted,
		"files_failed", out.Report.Failed(),
		logger.FieldCount, out.Report.Records)
	return out, nil
}
