package profile

import (
	"slices"
	"testing"
)

func TestProfiler_ZeroValue(t *testing.T) {
	var p Profiler
	if _, ok := p.Start().(ignore); !ok {
		t.Error("zero Profiler started a session")
	}
}

func TestProfiler_UnknownMode(t *testing.T) {
	p := Profiler{Mode: "bogus", Dir: t.TempDir(), Quiet: true}
	stopper := p.Start()
	defer stopper.Stop()
	if _, ok := stopper.(ignore); !ok {
		t.Error("unknown mode started a session")
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if Enabled() != (len(modes) > 0) {
		t.Errorf("Enabled() = %v with Modes() = %v", Enabled(), modes)
	}
	if Enabled() && !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v, want cpu among them", modes)
	}
}
