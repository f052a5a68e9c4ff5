// Package catalog maintains a SQLite index of material files.
//
// Each indexed file is stored with its source, a BLAKE2b digest used to skip
// unchanged files, and tables of its variables and proxies. Shader and proxy
// names are matched case-insensitively through [Key].
package catalog

import (
	"database/sql"
	_ "embed"
	"log/slog"
	"strconv"

	_ "github.com/mattn/go-sqlite3" // register driver

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/pkg"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

var (
	ErrOpen     = pkg.NewError("open catalog")
	ErrSchema   = pkg.NewError("apply catalog schema")
	ErrIndex    = pkg.NewError("index material")
	ErrQuery    = pkg.NewError("query catalog")
	ErrNotFound = pkg.NewError("material not in catalog")
)

// Catalog is an open material index.
type Catalog struct {
	db     *sql.DB
	logger log.Logger
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithLogger sets the logger used to report indexing progress.
func WithLogger(logger log.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// Open creates or opens the catalog database at path and brings its schema
// up to date.
//
// The database runs in WAL mode with a single connection, so one process
// writes at a time while others may read.
func Open(path string, opts ...Option) (*Catalog, error) {
	attr := slog.String("path", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(attr)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, ErrOpen.Wrap(err).With(attr)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := setup(db); err != nil {
		_ = db.Close()

		return nil, ErrSchema.Wrap(err).With(attr)
	}

	c := &Catalog{db: db}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	return c.db.Close()
}

func setup(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return pkg.WrapError(err).With(slog.String("pragma", pragma))
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return err
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	if version < schemaVersion {
		_, err := db.Exec("PRAGMA user_version = " + strconv.Itoa(schemaVersion))

		return err
	}

	return nil
}
