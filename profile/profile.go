package profile

import (
	"log/slog"
	"slices"

	"github.com/ardnew/smf/pkg"
)

// ErrUnknownMode is returned by [Profiler.Start] for a mode not in [Modes].
var ErrUnknownMode = pkg.NewError("unknown profiling mode")

// Stopper stops a running profile and flushes it to disk.
type Stopper interface{ Stop() }

// Profiler describes a single profiling run.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory. Empty means the working directory.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Start begins profiling and returns a [Stopper] that must be called to
// flush the profile. Start never returns a nil [Stopper].
func (p Profiler) Start() (Stopper, error) {
	if p.Mode == "" {
		return ignore{}, nil
	}

	if !slices.Contains(Modes(), p.Mode) {
		return ignore{}, ErrUnknownMode.With(
			slog.String("mode", p.Mode),
			slog.Bool("enabled", Enabled),
		)
	}

	return start(p), nil
}

type ignore struct{}

func (ignore) Stop() {}
