package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/posidron/rusty/pkg/config"
	"github.com/posidron/rusty/pkg/log"
	"github.com/posidron/rusty/pkg/profile"
)

type pprofConfig struct {
	Mode string `default:""            help:"Enable profiling (${pprofModes})." placeholder:"MODE"`
	Dir  string `default:"${pprofDir}" help:"Profile output directory."          type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	modes := "needs a build with -tags " + profile.Tag
	if profile.Enabled() {
		modes = strings.Join(profile.Modes(), ", ")
	}
	return kong.Vars{
		"pprofModes": modes,
		"pprofDir":   filepath.Join(filepath.Dir(config.DefaultHistoryPath()), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start begins profiling when a mode was given. stop is always callable.
func (f pprofConfig) start(ctx context.Context) (stop func(), err error) {
	if f.Mode == "" {
		return func() {}, nil
	}
	if !slices.Contains(profile.Modes(), f.Mode) {
		return nil, fmt.Errorf("profiling mode %q is not available in this build", f.Mode)
	}
	log.DebugContext(ctx, "pprof start", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
	profiler := profile.Profiler{Mode: f.Mode, Dir: f.Dir, Quiet: true}.Start()
	return func() {
		log.DebugContext(ctx, "pprof stop", slog.String("mode", f.Mode), slog.String("dir", f.Dir))
		profiler.Stop()
	}, nil
}
