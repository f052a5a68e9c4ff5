//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/pkg"
	"github.com/ardnew/smf/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start starts profiling if configured.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	stopper, err := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}.Start()
	if err != nil {
		log.WarnContext(ctx, "pprof not started", slog.Any("error", err))

		return func() {}
	}

	log.DebugContext(ctx, "pprof start", attrs...)

	return func() {
		stopper.Stop()
		log.DebugContext(ctx, "pprof stop", attrs...)
	}
}
