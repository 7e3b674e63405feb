// Package batch runs the linter or formatter over many files concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/format"
	"github.com/yacobolo/cssguide/internal/lint"
	"github.com/yacobolo/cssguide/internal/report"
)

// Mode selects what Run does with each file
type Mode int

const (
	ModeLint  Mode = iota // report violations only
	ModeFix               // format and write changed files back
	ModeCheck             // format without writing; report files that would change
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLint:
		return "lint"
	case ModeFix:
		return "fix"
	case ModeCheck:
		return "check"
	default:
		return "unknown"
	}
}

// ErrTimeout is returned for a document that took longer than Options.Timeout.
var ErrTimeout = errors.New("processing timed out")

// Options controls a batch run
type Options struct {
	Mode    Mode
	Workers int           // concurrent documents; 0 = GOMAXPROCS
	Timeout time.Duration // per document; 0 = no limit
	Logger  *slog.Logger  // nil = slog.Default()
}

// FileResult is the outcome for one file
type FileResult struct {
	Path       string
	Text       string           // text the violations refer to (formatted text after a fix)
	Violations []diag.Violation // remaining violations
	Changed    bool             // formatting changed the text
	Written    bool             // the file was rewritten
	Err        error            // read, write or timeout failure
}

// Run processes every path and returns the results in input order. A
// failing file never stops the batch; its error is recorded in its result.
// Cancelling ctx marks unprocessed files with the context error.
func Run(ctx context.Context, paths []string, cfg *config.Config, opts Options) []FileResult {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := time.Now()
	for i, path := range paths {
		g.Go(func() error {
			results[i] = processFile(ctx, path, cfg, opts, logger)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("batch finished",
		"mode", opts.Mode.String(),
		"files", len(paths),
		"workers", workers,
		"elapsed", time.Since(start))

	return results
}

func processFile(ctx context.Context, path string, cfg *config.Config, opts Options, logger *slog.Logger) FileResult {
	res := FileResult{Path: path}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading file: %w", err)
		logger.Warn("skipping file", "path", path, "error", err)
		return res
	}
	source := string(data)

	out, err := withTimeout(ctx, opts.Timeout, func() FileResult {
		return Process(source, cfg, opts.Mode)
	})
	if err != nil {
		res.Err = err
		logger.Warn("skipping file", "path", path, "error", err)
		return res
	}
	out.Path = path

	if opts.Mode == ModeFix && out.Changed {
		if err := writeFile(path, out.Text); err != nil {
			out.Err = fmt.Errorf("writing file: %w", err)
			logger.Warn("could not write fixed file", "path", path, "error", err)
			return out
		}
		out.Written = true
		logger.Debug("fixed file", "path", path)
	}

	logger.Debug("processed file", "path", path, "violations", len(out.Violations), "changed", out.Changed)
	return out
}

// Process handles one document in memory.
func Process(source string, cfg *config.Config, mode Mode) FileResult {
	if mode == ModeLint {
		return FileResult{Text: source, Violations: lint.Check(source, cfg)}
	}

	formatted, vs := format.Format(source, cfg)
	return FileResult{
		Text:       formatted,
		Violations: vs,
		Changed:    formatted != source,
	}
}

// withTimeout runs fn, giving up after timeout. The work itself is not
// interruptible; an abandoned call finishes in the background.
func withTimeout(ctx context.Context, timeout time.Duration, fn func() FileResult) (FileResult, error) {
	if timeout <= 0 {
		return fn(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan FileResult, 1)
	go func() { done <- fn() }()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return FileResult{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return FileResult{}, ctx.Err()
	}
}

// writeFile replaces the file contents, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}

// Report converts batch results into a report.Result. Read failures and
// timeouts become FileErrors; ModeFix and ModeCheck count changed files.
func Report(results []FileResult) *report.Result {
	out := &report.Result{FilesScanned: len(results)}

	for _, r := range results {
		if r.Err != nil {
			out.Failed = append(out.Failed, report.FileError{File: r.Path, Err: r.Err.Error()})
		}
		if r.Changed {
			out.FilesFixed++
		}

		lines := strings.Split(r.Text, "\n")
		for _, v := range r.Violations {
			issue := report.Issue{File: r.Path, Violation: v}
			if v.Pos.Line >= 1 && v.Pos.Line <= len(lines) {
				issue.SourceLine = strings.TrimRight(lines[v.Pos.Line-1], "\r")
			}
			out.Issues = append(out.Issues, issue)
		}
	}

	return out
}

// Changed returns the paths whose formatting differs, in input order.
func Changed(results []FileResult) []string {
	var paths []string
	for _, r := range results {
		if r.Changed {
			paths = append(paths, r.Path)
		}
	}
	return paths
}
