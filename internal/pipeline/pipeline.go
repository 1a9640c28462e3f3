// Package pipeline wires the transport, payload locator and normalizer into
// the end-to-end fetch-and-clean run, and owns the on-disk artifact layout.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/statfetch/bodyshape-cli/internal/clean"
	"github.com/statfetch/bodyshape-cli/internal/config"
	"github.com/statfetch/bodyshape-cli/internal/fetch"
	"github.com/statfetch/bodyshape-cli/internal/table"
	"github.com/statfetch/bodyshape-cli/internal/utils"
)

// Pipeline executes one fetch-and-clean run. Each instance carries its own
// run ID for log correlation; instances share no mutable state, so re-running
// on the same payload is idempotent.
type Pipeline struct {
	cfg    *config.Config
	client *fetch.Client
	logger *zap.Logger
}

// New builds a Pipeline from configuration.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	client := fetch.NewClient(
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(time.Duration(cfg.HTTPTimeoutSec)*time.Second),
		fetch.WithLogger(logger),
	)
	return &Pipeline{cfg: cfg, client: client, logger: logger}
}

// RawPath is where the located tabular payload is persisted.
func (p *Pipeline) RawPath() string {
	return filepath.Join(p.cfg.DataDir, "raw", p.cfg.TableID+"_raw.csv")
}

// WrapperPath is where a wrapper document is preserved when no tabular
// payload could be located. This is the only case where upstream content is
// retained unmodified.
func (p *Pipeline) WrapperPath() string {
	return filepath.Join(p.cfg.DataDir, "raw", p.cfg.TableID+"_raw.html")
}

// CleanedPath is the default destination of the normalized table.
func (p *Pipeline) CleanedPath() string {
	return filepath.Join(p.cfg.DataDir, "cleaned", p.cfg.TableID+"_cleaned.csv")
}

// Fetch downloads the configured source, locates the tabular payload
// (following at most one discovered CSV link), and writes the raw artifact.
// When location fails, the wrapper document is preserved before the error is
// returned.
func (p *Pipeline) Fetch(ctx context.Context) (string, error) {
	p.logger.Info("fetching source table",
		zap.String("url", p.cfg.SourceRef),
		zap.String("table_id", p.cfg.TableID))

	payload, err := p.client.Download(ctx, p.cfg.SourceRef)
	if err != nil {
		return "", err
	}
	loc, err := fetch.Locate(payload)
	if err != nil {
		p.preserveWrapper(err)
		return "", err
	}
	if loc.FollowURL != "" {
		p.logger.Info("following csv reference", zap.String("url", loc.FollowURL))
		payload, err = p.client.Download(ctx, loc.FollowURL)
		if err != nil {
			return "", err
		}
		loc, err = fetch.Locate(payload)
		if err != nil {
			p.preserveWrapper(err)
			return "", err
		}
		if loc.FollowURL != "" {
			// One hop only; a second wrapper is treated as no payload.
			err = &fetch.NoTabularError{URL: payload.URL, Wrapper: payload.Body}
			p.preserveWrapper(err)
			return "", err
		}
	}

	dest := p.RawPath()
	if err := utils.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", fmt.Errorf("prepare raw dir: %w", err)
	}
	if err := utils.SafeWriteFile(dest, loc.Tabular); err != nil {
		return "", fmt.Errorf("write raw artifact: %w", err)
	}
	p.logger.Info("raw table saved", zap.String("path", dest), zap.Int("bytes", len(loc.Tabular)))
	return dest, nil
}

// preserveWrapper persists the wrapper document carried by a NoTabularError
// for offline inspection. Best effort: a write failure is logged, not
// surfaced, since the location failure is the error that matters.
func (p *Pipeline) preserveWrapper(err error) {
	var nt *fetch.NoTabularError
	if !errors.As(err, &nt) || len(nt.Wrapper) == 0 {
		return
	}
	dest := p.WrapperPath()
	if werr := utils.EnsureDir(filepath.Dir(dest)); werr != nil {
		p.logger.Warn("preserve wrapper", zap.Error(werr))
		return
	}
	if werr := utils.SafeWriteFile(dest, nt.Wrapper); werr != nil {
		p.logger.Warn("preserve wrapper", zap.Error(werr))
		return
	}
	p.logger.Info("wrapper document preserved for inspection", zap.String("path", dest))
}

// Clean normalizes the raw table at rawPath and writes the canonical CSV to
// dest (CleanedPath when dest is empty). No partial output is written on a
// fatal error.
func (p *Pipeline) Clean(rawPath, dest string) (string, error) {
	if dest == "" {
		dest = p.CleanedPath()
	}
	src, err := table.ReadFile(rawPath)
	if err != nil {
		return "", err
	}
	out, err := clean.Normalize(src, clean.Options{MinAge: p.cfg.MinAge, MaxAge: p.cfg.MaxAge})
	if err != nil {
		return "", fmt.Errorf("clean %s: %w", rawPath, err)
	}
	if err := utils.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", fmt.Errorf("prepare cleaned dir: %w", err)
	}
	if err := out.WriteFile(dest); err != nil {
		return "", fmt.Errorf("write cleaned table: %w", err)
	}
	p.logger.Info("cleaned table saved",
		zap.String("path", dest),
		zap.Int("rows", len(out.Rows)),
		zap.Strings("columns", out.Header))
	return dest, nil
}

// Run executes fetch then clean, the original end-to-end flow.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	raw, err := p.Fetch(ctx)
	if err != nil {
		return "", err
	}
	return p.Clean(raw, "")
}
