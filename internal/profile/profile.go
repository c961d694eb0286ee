// Package profile starts runtime profiles for benchmarking formulas.
//
// Profiles are written by github.com/pkg/profile to a directory, named by
// mode, e.g. cpu.pprof. Analyze them with go tool pprof.
package profile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the sorted names of the supported profiling modes.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

// Stopper stops a running profile and writes its output.
type Stopper interface {
	Stop()
}

type ignore struct{}

func (ignore) Stop() {}

// Start starts profiling in the given mode, writing to dir. If dir is empty,
// pkg/profile chooses a temporary directory. An empty mode does nothing.
// pkg/profile allows only one profile at a time.
func Start(mode, dir string, quiet bool) (Stopper, error) {
	if mode == "" {
		return ignore{}, nil
	}
	m, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	opts := []func(*profile.Profile){m, profile.NoShutdownHook}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	if quiet {
		opts = append(opts, profile.Quiet)
	}
	return profile.Start(opts...), nil
}
