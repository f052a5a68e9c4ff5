package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/smf/lang"
	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/material"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their results
// to w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Input is the positional source argument shared by commands that read a
// single material.
type Input struct {
	Source string `arg:"" default:"-" help:"Source material file or '-' for default stdin." name:"source"`
}

// open returns a reader over the named source and the name to report in
// diagnostics.
func open(source string) (io.ReadCloser, string, error) {
	if source == "" || source == stdinSource {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, source, ErrOpenSource.
			With(slog.String("file", source)).
			Wrap(err)
	}

	return file, source, nil
}

// material parses and builds the material named by the source argument.
func (in Input) material(ctx context.Context) (*material.Material, error) {
	return load(ctx, in.Source)
}

// tree parses the source argument without building a material.
func (in Input) tree(ctx context.Context) (*lang.Node, error) {
	r, name, err := open(in.Source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return lang.ParseReader(ctx, bufio.NewReader(r),
		lang.WithFile(name),
		lang.WithLogger(log.FromContext(ctx)),
	)
}

func load(ctx context.Context, source string) (*material.Material, error) {
	r, name, err := open(source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return material.ParseReader(ctx, bufio.NewReader(r),
		material.WithFile(name),
		material.WithLogger(log.FromContext(ctx)),
	)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniquePaths resolves each path to an absolute, symlink-free form and drops
// any that refer to a file already listed. Paths that cannot be resolved are
// kept as given so the caller can report them.
func uniquePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[fileKey]struct{})

	for _, path := range paths {
		resolved, key, ok := resolve(path)
		if !ok {
			out = append(out, path)

			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, resolved)
	}

	return out
}

func resolve(path string) (string, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := makeFileKey(info)

	return resolved, key, ok
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
