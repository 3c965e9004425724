// Package profile wraps [github.com/pkg/profile] so the interpreter can be
// profiled from the command line:
//
//	go build -tags pprof ./cmd
//	rusty --pprof-mode cpu --pprof-dir ./profiles script.rs
//	go tool pprof ./profiles/cpu.pprof
//
// Without the pprof build tag every [Profiler] is a no-op and [Modes] is
// empty.
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
