package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seitarof/gen-enumkeys/internal/generator"
	"github.com/seitarof/gen-enumkeys/internal/matcher"
	"github.com/seitarof/gen-enumkeys/internal/model"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

// ErrStale is returned in check mode when a generated file differs from
// what would be generated now.
var ErrStale = errors.New("generated files are out of date")

// Runner orchestrates parser/matcher/model/generator layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerImpl)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *runnerImpl) {
		r.logger = l
	}
}

// WithReporter sets where diagnostics are printed.
func WithReporter(rep Reporter) RunnerOption {
	return func(r *runnerImpl) {
		r.reporter = rep
	}
}

// WithDiffOutput sets where check mode prints diffs.
func WithDiffOutput(w io.Writer) RunnerOption {
	return func(r *runnerImpl) {
		r.diffOut = w
	}
}

type runnerImpl struct {
	parser    parser.Parser
	matcher   matcher.SumMatcher
	generator generator.Generator
	logger    *zap.Logger
	reporter  Reporter

	diffMu  sync.Mutex
	diffOut io.Writer
}

// NewRunner creates a default runner implementation.
func NewRunner(
	p parser.Parser,
	m matcher.SumMatcher,
	g generator.Generator,
	opts ...RunnerOption,
) Runner {
	r := &runnerImpl{
		parser:    p,
		matcher:   m,
		generator: g,
		logger:    zap.NewNop(),
		reporter:  newTextReporter(os.Stderr, false),
		diffOut:   os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// outputFile is the per-package generator.Config.
type outputFile string

func (o outputFile) OutputFilename() string { return string(o) }

// Run generates every package matched by cfg.Patterns. Packages are
// independent; the first failure cancels the rest.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	pkgs, err := r.parser.Parse(cfg.Patterns...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	builder := model.New(model.WithTypes(cfg.Types...))
	var (
		mu    sync.Mutex
		stale []string
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for _, pkg := range pkgs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			path, err := r.runPackage(cfg, builder, pkg)
			if err != nil {
				return err
			}
			if path != "" {
				mu.Lock()
				stale = append(stale, path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(stale) > 0 {
		return fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
	}
	return nil
}

// runPackage generates one package. In check mode it returns the path of a
// stale file instead of writing it.
func (r *runnerImpl) runPackage(cfg *Config, builder model.Builder, pkg *parser.PackageInfo) (string, error) {
	log := r.logger.With(zap.String("package", pkg.PkgPath))

	sums := r.matcher.MatchSums(pkg, cfg.Types)
	file, err := builder.Build(pkg, sums)
	if err != nil {
		var d *model.Diagnostic
		if errors.As(err, &d) {
			r.report(SeverityError, d)
		}
		return "", fmt.Errorf("build %s: %w", pkg.PkgPath, err)
	}
	for _, w := range file.Warnings {
		r.report(SeverityWarning, w)
	}
	if file.Empty() {
		log.Debug("nothing to generate")
		return "", nil
	}

	out := outputFile(filepath.Join(pkg.Dir, cfg.Output))
	if cfg.Check {
		return r.check(out, file, log)
	}
	if err := r.generator.Generate(out, file); err != nil {
		return "", fmt.Errorf("generate %s: %w", pkg.PkgPath, err)
	}
	log.Debug("generated",
		zap.String("file", string(out)),
		zap.Int("sums", len(file.Sums)),
		zap.Int("codecs", len(file.Codecs)),
	)
	return "", nil
}

func (r *runnerImpl) report(severity Severity, d *model.Diagnostic) {
	if err := r.reporter.Report(severity, d); err != nil {
		r.logger.Warn("report diagnostic", zap.Error(err))
	}
}

func (r *runnerImpl) check(out outputFile, file *model.File, log *zap.Logger) (string, error) {
	want, err := r.generator.Render(out, file)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", file.PkgPath, err)
	}
	got, err := os.ReadFile(string(out))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", out, err)
	}
	if bytes.Equal(got, want) {
		log.Debug("up to date", zap.String("file", string(out)))
		return "", nil
	}

	r.diffMu.Lock()
	defer r.diffMu.Unlock()
	if _, err := io.WriteString(r.diffOut, lineDiff(string(out), string(got), string(want))); err != nil {
		return "", fmt.Errorf("write diff: %w", err)
	}
	return string(out), nil
}

// lineDiff renders the changed lines between the file on disk and the
// generated source.
func lineDiff(path, got, want string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(got, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s (generated)\n", path, path)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String()
}
