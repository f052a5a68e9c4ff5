package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"text/tabwriter"

	"github.com/ardnew/smf/catalog"
	"github.com/ardnew/smf/log"
)

// database is the catalog location flag shared by the catalog commands.
type database struct {
	DB string `default:"${catalog}" help:"Catalog database file." type:"path"`
}

func (d database) open(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Open(d.DB, catalog.WithLogger(log.FromContext(ctx)))
}

// Index adds material files to the catalog.
type Index struct {
	Database database `embed:""`

	Paths []string `arg:"" help:"Material files to index." name:"path" type:"path"`
}

// Run executes the index command.
func (i *Index) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cat, err := i.Database.open(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	run, err := cat.Index(ctx, uniquePaths(i.Paths)...)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)

	for _, path := range run.Indexed {
		fmt.Fprintf(out, "indexed   %s\n", path)
	}

	for _, path := range run.Unchanged {
		fmt.Fprintf(out, "unchanged %s\n", path)
	}

	for _, f := range run.Failed {
		fmt.Fprintf(out, "failed    %s: %v\n", f.Path, f.Err)
	}

	return nil
}

// Find lists catalog entries matching every given filter.
type Find struct {
	Database database `embed:""`

	Shader   string `help:"Match the shader name, ignoring case."               short:"s"`
	Proxy    string `help:"Match materials invoking this proxy, ignoring case." short:"p"`
	Variable string `help:"Match materials declaring this variable."            short:"v"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cat, err := f.Database.open(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.Find(ctx, catalog.Filter{
		Shader:   f.Shader,
		Proxy:    f.Proxy,
		Variable: f.Variable,
	})
	if err != nil {
		return err
	}

	log.FromContext(ctx).DebugContext(ctx, "find complete",
		slog.Int("matches", len(entries)))

	tw := tabwriter.NewWriter(outputFrom(ctx), 0, 4, 2, ' ', 0)

	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d vars\t%d proxies\n",
			e.Path, e.Shader, e.Variables, e.Proxies)
	}

	return tw.Flush()
}

// Forget removes files from the catalog.
type Forget struct {
	Database database `embed:""`

	Paths []string `arg:"" help:"Indexed material files to remove." name:"path" type:"path"`
}

// Run executes the forget command.
func (f *Forget) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cat, err := f.Database.open(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	out := outputFrom(ctx)

	for _, path := range f.Paths {
		// The file may already be gone, so fall back to the unresolved path.
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}

		ok, err := cat.Remove(ctx, path)
		if err != nil {
			return err
		}

		if ok {
			fmt.Fprintf(out, "removed   %s\n", path)
		} else {
			fmt.Fprintf(out, "not found %s\n", path)
		}
	}

	return nil
}
