// Package convert turns legacy .xls workbooks into .xlsx through an external
// office process bounded by a wall-clock timeout.
package convert

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/ukaji3/lotomatrix-go/internal/logger"
)

// Converter turns a legacy workbook into a file excelize can open.
type Converter interface {
	// Convert returns the path of the converted workbook.
	Convert(ctx context.Context, path string) (string, error)
}

const (
	// DefaultCommand converts with a headless LibreOffice.
	DefaultCommand = "soffice --headless --convert-to xlsx --outdir {outdir} {input}"
	// DefaultTimeout bounds a single conversion.
	DefaultTimeout = 40 * time.Second

	waitDelay     = 5 * time.Second
	maxOutputTail = 512
)

// Config configures an Office converter.
type Config struct {
	// OutDir receives converted files. Existing conversions there are reused.
	OutDir string
	// InputRoot is the directory inputs are discovered under. Conversions
	// mirror an input's directory relative to it, so equal file names in
	// different folders do not share an output.
	InputRoot string
	// Command is the converter command line. It may reference {input},
	// {outdir} and {output}; quoting follows POSIX shell rules.
	Command string
	// Timeout bounds each conversion. Zero means DefaultTimeout.
	Timeout time.Duration
	// KillNames lists process names killed after a timeout, for converters
	// that leave a detached office instance behind.
	KillNames []string
}

// Office runs an external command to convert workbooks.
// Conversions are serialized; office suites do not tolerate concurrent
// headless instances sharing a profile.
type Office struct {
	outDir    string
	inputRoot string
	argv      []string
	timeout   time.Duration
	killNames []string
	logger    *zap.SugaredLogger

	mu sync.Mutex
}

// New creates an Office converter. A nil logger disables logging.
func New(cfg Config, logger *zap.SugaredLogger) (*Office, error) {
	if cfg.OutDir == "" {
		return nil, errors.New("converter output directory is empty")
	}
	command := cfg.Command
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	argv, err := ParseCommand(command)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve converter output directory %s", cfg.OutDir)
	}
	inputRoot := ""
	if cfg.InputRoot != "" {
		if inputRoot, err = filepath.Abs(cfg.InputRoot); err != nil {
			return nil, errors.Wrapf(err, "resolve input root %s", cfg.InputRoot)
		}
	}
	return &Office{
		outDir:    outDir,
		inputRoot: inputRoot,
		argv:      argv,
		timeout:   timeout,
		killNames: cfg.KillNames,
		logger:    logger,
	}, nil
}

// ParseCommand splits a converter command line into arguments.
func ParseCommand(command string) ([]string, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "parse converter command %q", command)
	}
	if len(argv) == 0 {
		return nil, errors.New("converter command is empty")
	}
	return argv, nil
}

// OutputPath returns where the converted form of the absolute path input is
// written. Inputs under the input root keep their relative directory; others
// go to a folder named after a hash of their directory.
func (o *Office) OutputPath(input string) string {
	dir := filepath.Dir(input)
	var sub string
	if rel, ok := relativeTo(o.inputRoot, dir); ok {
		sub = rel
	} else {
		sub = "_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(filepath.ToSlash(dir))).String()[:8]
	}
	base := filepath.Base(input)
	return filepath.Join(o.outDir, sub, strings.TrimSuffix(base, filepath.Ext(base))+".xlsx")
}

func relativeTo(root, dir string) (string, bool) {
	if root == "" {
		return "", false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// Convert implements Converter.
func (o *Office) Convert(ctx context.Context, path string) (string, error) {
	input, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Path: path, Err: errors.Wrap(err, "resolve input path")}
	}
	output := o.OutputPath(input)
	outDir := filepath.Dir(output)

	if fileExists(output) {
		o.logger.Debugw("Reusing converted file", logger.FieldFile, filepath.Base(path), "output", output)
		return output, nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &Error{Path: path, Err: errors.Wrap(err, "create output directory")}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	argv := expand(o.argv, input, outDir, output)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	cmd.Cancel = func() error {
		return killTree(int32(cmd.Process.Pid))
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if ctx.Err() != nil {
			removePartial(output)
			return "", &Error{Path: path, Err: ctx.Err()}
		}
		killed := killByName(o.killNames)
		removePartial(output)
		o.logger.Warnw("Converter timed out, process killed",
			logger.FieldFile, filepath.Base(path),
			"timeout", o.timeout.String(),
			"stray_killed", killed)
		return "", &Error{
			Path:     path,
			TimedOut: true,
			Output:   tail(buf.String()),
			Err:      errors.Wrapf(ErrTimeout, "after %s", o.timeout),
		}
	}
	if runErr != nil {
		removePartial(output)
		return "", &Error{Path: path, Output: tail(buf.String()), Err: errors.Wrapf(runErr, "run %s", argv[0])}
	}
	if !fileExists(output) {
		return "", &Error{
			Path:   path,
			Output: tail(buf.String()),
			Err:    errors.Newf("converter did not produce %s", filepath.Base(output)),
		}
	}

	o.logger.Infow("Converted legacy workbook",
		logger.FieldFile, filepath.Base(path),
		"output", output,
		logger.FieldDurationMS, elapsed.Milliseconds())
	return output, nil
}

func expand(template []string, input, outDir, output string) []string {
	r := strings.NewReplacer(
		"{input}", input,
		"{outdir}", outDir,
		"{output}", output,
	)
	argv := make([]string, len(template))
	for i, a := range template {
		argv[i] = r.Replace(a)
	}
	return argv
}

// removePartial deletes what a failed conversion left behind so it is not
// reused as a finished one.
func removePartial(output string) {
	_ = os.Remove(output)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxOutputTail {
		return "..." + s[len(s)-maxOutputTail:]
	}
	return s
}
