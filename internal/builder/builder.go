package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jsmin/internal/config"
	"jsmin/internal/logger"
	"jsmin/internal/minifier"
)

// Builder minifies every script of a project tree into its target file.
type Builder struct {
	Root    string
	Config  *config.Project
	Force   bool
	Version string

	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for per-file decisions. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithForce rebuilds targets even when they are newer than their sources.
func WithForce(force bool) Option {
	return func(b *Builder) { b.Force = force }
}

// WithVersion sets the project version recorded in reports.
func WithVersion(v string) Option {
	return func(b *Builder) { b.Version = v }
}

// New creates a Builder for the project rooted at root.
func New(root string, cfg *config.Project, opts ...Option) *Builder {
	if cfg == nil {
		cfg = config.Default()
	}
	b := &Builder{
		Root:   root,
		Config: cfg,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sources returns the project's script files relative to Root, skipping
// previous outputs.
func (b *Builder) Sources() ([]string, error) {
	files, err := ExpandIncludes(b.Root, b.Config.Include, b.Config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to expand include patterns: %w", err)
	}

	outDir := ""
	if b.Config.OutDir != "" {
		outDir = relSlash(b.Root, b.outDir()) + "/"
	}

	sources := files[:0]
	for _, f := range files {
		if strings.HasSuffix(f, b.Config.Suffix) {
			continue
		}
		if outDir != "" && strings.HasPrefix(f, outDir) {
			continue
		}
		sources = append(sources, f)
	}
	return sources, nil
}

func (b *Builder) outDir() string {
	if filepath.IsAbs(b.Config.OutDir) {
		return b.Config.OutDir
	}
	return filepath.Join(b.Root, b.Config.OutDir)
}

// Target returns the output path for a source given relative to Root. The
// source's extension is replaced by the configured suffix.
func (b *Builder) Target(rel string) string {
	dir, file := path.Split(filepath.ToSlash(rel))
	name := strings.TrimSuffix(file, path.Ext(file)) + b.Config.Suffix

	base := b.Root
	if b.Config.OutDir != "" {
		base = b.outDir()
	}
	return filepath.Join(base, filepath.FromSlash(dir), name)
}

// Build minifies every stale source. Minifier faults are handled according to
// the on-error policy; I/O errors always abort the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	report, err := newReport(b.Version)
	if err != nil {
		return nil, err
	}

	sources, err := b.Sources()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("starting build", "run", report.RunID, "files", len(sources), "jobs", b.Config.Jobs)

	report.Files = make([]FileResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Config.Jobs, 1))
	for i, rel := range sources {
		if gctx.Err() != nil {
			break
		}
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.process(rel)
			report.Files[i] = res
			return err
		})
	}

	err = g.Wait()
	report.finish()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return report, err
	}

	if b.Config.Report != "" {
		reportPath := b.Config.Report
		if !filepath.IsAbs(reportPath) {
			reportPath = filepath.Join(b.Root, reportPath)
		}
		if err := report.Write(reportPath); err != nil {
			return report, fmt.Errorf("failed to write report: %w", err)
		}
	}

	b.logger.Debug("build finished", "run", report.RunID, "duration", report.Duration)
	return report, nil
}

func (b *Builder) process(rel string) (FileResult, error) {
	src := filepath.Join(b.Root, filepath.FromSlash(rel))
	dst := b.Target(rel)
	res := FileResult{Source: rel, Target: relSlash(b.Root, dst)}

	fail := func(err error) (FileResult, error) {
		res.Status = StatusFailed
		res.Error = err.Error()
		return res, err
	}

	info, err := os.Stat(src)
	if err != nil {
		return fail(fmt.Errorf("failed to stat %s: %w", rel, err))
	}
	res.InputBytes = info.Size()

	if !b.Force && isFresh(info, dst) {
		b.logger.Debug("target up to date", "source", rel, "target", res.Target)
		res.Status = StatusFresh
		return res, nil
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s: %w", rel, err))
	}

	output, err := minifier.Minify(string(content))
	res.Status = StatusMinified
	if err != nil {
		var syntaxErr *minifier.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return fail(fmt.Errorf("failed to minify %s: %w", rel, err))
		}

		res.Error = err.Error()
		switch b.Config.OnError {
		case config.OnErrorSkip:
			b.logger.Warn("skipping file", "source", rel, "error", err)
			res.Status = StatusSkipped
			return res, nil
		case config.OnErrorCopy:
			b.logger.Warn("copying file unminified", "source", rel, "error", err)
			output = string(content)
			res.Status = StatusCopied
		default:
			return fail(fmt.Errorf("failed to minify %s: %w", rel, err))
		}
	}

	if err := WriteFileAtomic(dst, []byte(output), info.Mode().Perm()); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", res.Target, err))
	}
	res.OutputBytes = int64(len(output))

	b.logger.Debug("wrote target", "source", rel, "target", res.Target, "status", res.Status,
		"in", res.InputBytes, "out", res.OutputBytes)
	return res, nil
}

// Changed reports whether any source or the config file was modified after
// since, along with the newest modification time seen.
func (b *Builder) Changed(since time.Time) (bool, time.Time, error) {
	var latest time.Time
	changed := false

	check := func(p string) {
		info, err := os.Stat(p)
		if err != nil {
			return
		}
		if info.ModTime().After(since) {
			changed = true
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}

	sources, err := b.Sources()
	if err != nil {
		return false, latest, err
	}
	for _, rel := range sources {
		check(filepath.Join(b.Root, filepath.FromSlash(rel)))
	}
	if p := b.Config.Path(); p != "" {
		check(p)
	}

	return changed, latest, nil
}
