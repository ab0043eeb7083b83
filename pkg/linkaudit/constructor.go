// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package linkaudit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/petar-djukic/linkaudit/internal/audit"
	"github.com/petar-djukic/linkaudit/internal/docs"
	"github.com/petar-djukic/linkaudit/internal/logging"
	"github.com/petar-djukic/linkaudit/internal/report"
	"github.com/petar-djukic/linkaudit/internal/resolve"
	"github.com/petar-djukic/linkaudit/pkg/types"
)

var extensionPattern = regexp.MustCompile(`^\.[^./\\]+$`)

// Option customizes an Auditor.
type Option func(*options)

type options struct {
	fs     afero.Fs
	logger *slog.Logger
}

// WithFs sets the filesystem documents are read from and the report is
// written to. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger sets the logger for progress output. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New validates the config, applies defaults, and returns a ready-to-use
// Auditor. It does not touch the document tree; that happens in Run.
func New(cfg Config, opts ...Option) (Auditor, error) {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &auditor{cfg: cfg, fs: o.fs, logger: logging.OrDiscard(o.logger)}, nil
}

// auditor adapts internal/audit.Runner to the public Auditor interface.
type auditor struct {
	cfg    Config
	fs     afero.Fs
	logger *slog.Logger
}

func (a *auditor) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	runner := audit.NewRunner(audit.Deps{
		Fs:             a.fs,
		Logger:         a.logger,
		RunID:          runID,
		Root:           a.cfg.Root,
		RootSegment:    a.cfg.RootSegment,
		Extension:      a.cfg.Extension,
		Exclude:        a.cfg.Exclude,
		Gitignore:      a.cfg.Gitignore,
		SkipPaths:      []string{a.cfg.Output},
		Workers:        a.cfg.Workers,
		CheckAnchors:   a.cfg.CheckAnchors,
		FuzzyThreshold: a.cfg.FuzzyThreshold,
	})

	result, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, docs.ErrRootNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrEnumerate, err)
		}
		return nil, err
	}

	data, err := a.render(result)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	if err := report.Write(a.fs, a.cfg.Output, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportWrite, err)
	}
	a.logger.InfoContext(ctx, "Report saved",
		slog.String("run_id", runID),
		slog.String("path", a.cfg.Output))

	score, ok := result.HealthScore()
	return &Result{
		Audit:          result,
		ReportPath:     a.cfg.Output,
		HealthScore:    score,
		HasHealthScore: ok,
	}, nil
}

func (a *auditor) render(result *types.AuditResult) ([]byte, error) {
	opts := report.Options{
		MaxIssueRows:       a.cfg.MaxIssueRows,
		MaxExternalSamples: a.cfg.MaxExternalSamples,
		CheckAnchors:       a.cfg.CheckAnchors,
		Orphans:            a.cfg.Orphans,
		Extension:          a.cfg.Extension,
	}
	if a.cfg.Format == FormatJSON {
		return report.JSON(result, opts)
	}
	return []byte(report.Markdown(result, opts)), nil
}

// validateConfig checks field constraints. Root existence is checked
// when the audit runs.
func validateConfig(cfg Config) error {
	// ValidateWithOzzo returns a typed nil on success.
	if verr := goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&cfg,
			validation.Field(&cfg.Root, validation.Required),
			validation.Field(&cfg.Extension, validation.Match(extensionPattern).Error("must look like .md")),
			validation.Field(&cfg.Format, validation.In(FormatMarkdown, FormatJSON)),
			validation.Field(&cfg.Workers, validation.Min(0)),
			validation.Field(&cfg.FuzzyThreshold, validation.Max(1.0)),
			validation.Field(&cfg.MaxIssueRows, validation.Min(0)),
			validation.Field(&cfg.MaxExternalSamples, validation.Min(0)),
		)
	}, "linkaudit config validation failed"); verr != nil {
		return verr
	}
	return nil
}

// applyDefaults fills in zero-value fields and makes paths absolute.
func applyDefaults(cfg *Config) error {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	cfg.Root = root

	if cfg.Extension == "" {
		cfg.Extension = resolve.DefaultExtension
	}
	if cfg.Format == "" {
		cfg.Format = FormatMarkdown
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if cfg.Output == "" {
		ext := ".md"
		if cfg.Format == FormatJSON {
			ext = ".json"
		}
		cfg.Output = filepath.Join(cfg.Root, DefaultReportName+ext)
	}
	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return fmt.Errorf("resolving output: %w", err)
	}
	cfg.Output = output
	return nil
}
