// Package profile provides optional runtime profiling for pcalc.
//
// Profiling is compiled in only with the "pprof" build tag, which wires
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/pcalc"}
//	defer p.Start().Stop()
//
// Profiles are written to Path using the file names chosen by pkg/profile,
// for example cpu.pprof or mem.pprof. Inspect them with go tool pprof:
//
//	go tool pprof -http=: /tmp/pcalc/cpu.pprof
//
// The default output directory used by the CLI is the pprof subdirectory of
// the user cache directory, for example $XDG_CACHE_HOME/pcalc/pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
