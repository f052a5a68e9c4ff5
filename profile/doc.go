// Package profile starts optional runtime profiling for smf.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	smf --pprof-mode cpu --pprof-dir ./profiles show UnlitGeneric.smf
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper]. With the tag, [github.com/pkg/profile] writes one
// profile per run into [Profiler.Path], and [net/http/pprof] handlers are
// registered on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
