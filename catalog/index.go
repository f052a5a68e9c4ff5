package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/pkg"
)

// Key returns the form of a shader or proxy name used for matching:
// case-folded and in Unicode normalization form C.
func Key(name string) string {
	return norm.NFC.String(cases.Fold().String(name))
}

// Run summarizes one call to [Catalog.Index].
type Run struct {
	ID        string
	Indexed   []string
	Unchanged []string
	Failed    []Failure
}

// Failure records a file that could not be indexed.
type Failure struct {
	Path string
	Err  error
}

// Index reads, builds and stores each file in paths. Files whose digest
// matches the stored one are left alone. A file that cannot be read or built
// is recorded in [Run.Failed] and does not stop the run; database errors do.
func (c *Catalog) Index(ctx context.Context, paths ...string) (Run, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Run{}, ErrIndex.Wrap(err)
	}

	run := Run{ID: id.String()}
	logger := c.logger.With(slog.String("run", run.ID))

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, version) VALUES (?, ?, ?)`,
		run.ID, time.Now().UTC().Format(time.RFC3339), pkg.Version,
	)
	if err != nil {
		return run, ErrIndex.Wrap(err)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return run, ErrIndex.Wrap(err)
		}

		abs, changed, err := c.indexFile(ctx, run.ID, path)

		switch {
		case errors.Is(err, errSkip):
			cause := errors.Unwrap(err)
			logger.WarnContext(ctx, "skipped file",
				slog.String("path", path), slog.Any("error", cause))
			run.Failed = append(run.Failed, Failure{Path: path, Err: cause})

		case err != nil:
			return run, err

		case changed:
			logger.DebugContext(ctx, "indexed", slog.String("path", abs))
			run.Indexed = append(run.Indexed, abs)

		default:
			logger.TraceContext(ctx, "unchanged", slog.String("path", abs))
			run.Unchanged = append(run.Unchanged, abs)
		}
	}

	logger.InfoContext(ctx, "index complete",
		slog.Int("indexed", len(run.Indexed)),
		slog.Int("unchanged", len(run.Unchanged)),
		slog.Int("failed", len(run.Failed)),
	)

	return run, nil
}

// errSkip marks per-file failures that do not abort a run.
var errSkip = pkg.NewError("skip file")

func (c *Catalog) indexFile(ctx context.Context, runID, path string) (string, bool, error) {
	attr := slog.String("path", path)

	abs, err := filepath.Abs(path)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}

	if err != nil {
		return path, false, errSkip.Wrap(ErrIndex.Wrap(err).With(attr))
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return abs, false, errSkip.Wrap(pkg.ErrReadInput.Wrap(err).With(attr))
	}

	digest := blake2b.Sum256(src)

	var stored []byte

	err = c.db.QueryRowContext(ctx,
		`SELECT digest FROM materials WHERE path = ?`, abs,
	).Scan(&stored)

	switch {
	case err == nil && bytes.Equal(stored, digest[:]):
		return abs, false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return abs, false, ErrQuery.Wrap(err).With(attr)
	}

	m, err := material.ParseString(ctx, string(src),
		material.WithFile(abs), material.WithLogger(c.logger))
	if err != nil {
		return abs, false, errSkip.Wrap(err)
	}

	if err := c.store(ctx, runID, abs, digest[:], string(src), m); err != nil {
		return abs, false, ErrIndex.Wrap(err).With(attr)
	}

	return abs, true, nil
}

func (c *Catalog) store(
	ctx context.Context,
	runID, path string,
	digest []byte,
	src string,
	m *material.Material,
) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM materials WHERE path = ?`, path); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO materials (path, digest, shader, shader_key, source, run_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		path, digest, m.Shader, Key(m.Shader), src, runID,
	); err != nil {
		return err
	}

	for _, name := range m.VariableNames() {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO variables (path, name, type) VALUES (?, ?, ?)`,
			path, name, m.Variables[name].Kind().String(),
		); err != nil {
			return err
		}
	}

	for _, g := range []material.Group{material.GroupSetup, material.GroupRender} {
		for i, px := range m.Proxies(g) {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO proxies (path, grp, position, name, name_key)
				VALUES (?, ?, ?, ?, ?)`,
				path, g.String(), i, px.Name, Key(px.Name),
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
