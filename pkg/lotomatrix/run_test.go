package lotomatrix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/lotomatrix-go/internal/logger"
	"github.com/ukaji3/lotomatrix-go/pkg/lotomatrix/models"
)

func TestRunContinuesPastFailedFile(t *testing.T) {
	dir := t.TempDir()
	first := writeWorkbook(t, filepath.Join(dir, "1.xlsx"), map[string]interface{}{
		"B11": "EQ-1", "M11": "one-a",
		"M12": "one-b",
	})
	second := filepath.Join(dir, "2.xlsx")
	require.NoError(t, os.WriteFile(second, []byte("garbage"), 0644))
	third := writeWorkbook(t, filepath.Join(dir, "3.xlsx"), map[string]interface{}{
		"B11": "EQ-3", "M11": "three",
	})

	out, err := Run(context.Background(), []string{first, second, third}, DefaultOptions())
	require.NoError(t, err)

	rep := out.Report
	assert.Equal(t, 3, rep.Found)
	assert.Equal(t, 2, rep.Processed)
	assert.Equal(t, 1, rep.Failed())
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "2.xlsx", rep.Failures[0].File)
	assert.NotEmpty(t, rep.Failures[0].Error)

	require.Len(t, out.Records, 3)
	assert.Equal(t, []string{"1.xlsx", "1.xlsx", "3.xlsx"}, sourceFiles(out.Records))
	assert.Equal(t, "one-b", str(out.Records[1].HowToLock))
	assert.Equal(t, 3, rep.Records)
}

func TestRunLogFields(t *testing.T) {
	dir := t.TempDir()
	good := writeWorkbook(t, filepath.Join(dir, "good.xlsx"), map[string]interface{}{
		"B11": "EQ-1", "M11": "Valve", "A12": "LEGENDA",
	})
	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0644))

	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core).Sugar()
	opts.RunID = "run-1"
	_, err := Run(context.Background(), []string{good, bad}, opts)
	require.NoError(t, err)

	failed := logs.FilterMessage("File failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, "bad.xlsx", fields[logger.FieldFile])
	assert.Equal(t, "run-1", fields[logger.FieldRunID])
	assert.NotEmpty(t, fields[logger.FieldError])

	processed := logs.FilterMessage("File processed").All()
	require.Len(t, processed, 1)
	assert.Contains(t, processed[0].ContextMap(), logger.FieldDurationMS)

	footer := logs.FilterMessage("Footer row ends data region").All()
	require.Len(t, footer, 1)
	fields = footer[0].ContextMap()
	assert.Equal(t, "Sheet1", fields[logger.FieldSheet])
	assert.EqualValues(t, 12, fields[logger.FieldRow])
	assert.Equal(t, "LEGENDA", fields[logger.FieldKeyword])
}

func TestRunFillDownDoesNotLeakAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeWorkbook(t, filepath.Join(dir, "a.xlsx"), map[string]interface{}{"B11": "EQ-A", "M11": "x"})
	b := writeWorkbook(t, filepath.Join(dir, "b.xlsx"), map[string]interface{}{"M11": "y"})

	out, err := Run(context.Background(), []string{a, b}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, out.Records, 2)
	assert.Nil(t, out.Records[1].EquipmentTag)
}

func TestRunOrderIndependentOfWorkers(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 8; i++ {
		cells := map[string]interface{}{"B11": fmt.Sprintf("EQ-%d", i)}
		for r := 0; r <= i; r++ {
			cells[fmt.Sprintf("M%d", 11+r)] = fmt.Sprintf("lock %d.%d", i, r)
		}
		files = append(files, writeWorkbook(t, filepath.Join(dir, fmt.Sprintf("f%d.xlsx", i)), cells))
	}

	serial, err := Run(context.Background(), files, DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Workers = 4
	parallel, err := Run(context.Background(), files, opts)
	require.NoError(t, err)

	require.Len(t, parallel.Records, len(serial.Records))
	for i := range serial.Records {
		assert.Equal(t, serial.Records[i].SourceFile, parallel.Records[i].SourceFile)
		assert.Equal(t, str(serial.Records[i].HowToLock), str(parallel.Records[i].HowToLock))
	}
	assert.Equal(t, 36, len(serial.Records))
}

func TestRunProgressAndRunID(t *testing.T) {
	dir := t.TempDir()
	a := writeWorkbook(t, filepath.Join(dir, "a.xlsx"), map[string]interface{}{"B11": "EQ", "M11": "x"})

	var seen []int
	opts := DefaultOptions()
	opts.RunID = "run-1"
	opts.Progress = func(index, total int, path string) {
		seen = append(seen, index, total)
	}
	out, err := Run(context.Background(), []string{a}, opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, seen)
	assert.Equal(t, "run-1", out.Report.RunID)
	assert.False(t, out.Report.FinishedAt.Before(out.Report.StartedAt))
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeWorkbook(t, filepath.Join(dir, "a.xlsx"), map[string]interface{}{"B11": "EQ", "M11": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{a}, DefaultOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunCountsConversionOfUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	xls := filepath.Join(dir, "old.xls")
	require.NoError(t, os.WriteFile(xls, []byte("legacy"), 0644))
	garbage := filepath.Join(dir, "conv", "old.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(garbage), 0755))
	require.NoError(t, os.WriteFile(garbage, []byte("not a zip"), 0644))

	opts := DefaultOptions()
	opts.Converter = &stubConverter{out: garbage}
	out, err := Run(context.Background(), []string{xls}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Report.Converted)
	assert.Equal(t, 0, out.Report.Processed)
	assert.Equal(t, 1, out.Report.Failed())
}

func TestSink(t *testing.T) {
	s := NewSink(3)
	s.Add(&models.FileResult{File: "a.xlsx", Converted: true, Sheets: []models.SheetExtraction{{Records: []models.Record{{SourceFile: "a.xlsx"}}}}})
	s.Add(&models.FileResult{File: "b.xlsx", Err: errors.New("boom")})
	s.Add(&models.FileResult{File: "c.xlsx"})
	s.Add(&models.FileResult{File: "d.xls", Converted: true, Err: errors.New("corrupt")})

	out := s.Result()
	assert.Equal(t, 3, out.Report.Found)
	assert.Equal(t, 2, out.Report.Processed)
	assert.Equal(t, 2, out.Report.Converted)
	assert.Equal(t, 2, out.Report.Failed())
	assert.Equal(t, []models.FileFailure{
		{File: "b.xlsx", Error: "boom"},
		{File: "d.xls", Error: "corrupt"},
	}, out.Report.Failures)
	assert.Len(t, out.Records, 1)
}

func sourceFiles(recs []models.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.SourceFile
	}
	return out
}
