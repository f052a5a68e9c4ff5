package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/smf/material"
)

// Filter selects catalog entries. Empty fields match everything.
type Filter struct {
	// Shader matches the shader name, ignoring case.
	Shader string
	// Proxy matches materials invoking a proxy of this name in either group,
	// ignoring case.
	Proxy string
	// Variable matches materials declaring a variable of exactly this name.
	Variable string
}

// Entry is one indexed material.
type Entry struct {
	Path      string
	Shader    string
	RunID     string
	Variables int
	Proxies   int
}

// Find returns the entries matching f, ordered by path.
func (c *Catalog) Find(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)

	if f.Shader != "" {
		where = append(where, `m.shader_key = ?`)
		args = append(args, Key(f.Shader))
	}

	if f.Proxy != "" {
		where = append(where,
			`EXISTS (SELECT 1 FROM proxies p WHERE p.path = m.path AND p.name_key = ?)`)
		args = append(args, Key(f.Proxy))
	}

	if f.Variable != "" {
		where = append(where,
			`EXISTS (SELECT 1 FROM variables v WHERE v.path = m.path AND v.name = ?)`)
		args = append(args, f.Variable)
	}

	query := `
		SELECT m.path, m.shader, m.run_id,
			(SELECT COUNT(*) FROM variables v WHERE v.path = m.path),
			(SELECT COUNT(*) FROM proxies p WHERE p.path = m.path)
		FROM materials m`

	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}

	query += "\n\t\tORDER BY m.path"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Shader, &e.RunID, &e.Variables, &e.Proxies); err != nil {
			return nil, ErrQuery.Wrap(err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return entries, nil
}

// Get rebuilds the material stored for path. The path must be given as it
// appears in [Entry.Path].
func (c *Catalog) Get(ctx context.Context, path string) (*material.Material, error) {
	var src string

	err := c.db.QueryRowContext(ctx,
		`SELECT source FROM materials WHERE path = ?`, path,
	).Scan(&src)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound.With(slog.String("path", path))
	case err != nil:
		return nil, ErrQuery.Wrap(err).With(slog.String("path", path))
	}

	return material.ParseString(ctx, src,
		material.WithFile(path), material.WithLogger(c.logger))
}

// Remove deletes path from the catalog. It reports whether path was present.
func (c *Catalog) Remove(ctx context.Context, path string) (bool, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM materials WHERE path = ?`, path)
	if err != nil {
		return false, ErrQuery.Wrap(err).With(slog.String("path", path))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, ErrQuery.Wrap(err).With(slog.String("path", path))
	}

	return n > 0, nil
}
