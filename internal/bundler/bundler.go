package bundler

import (
	"context"
	"fmt"
)

// Config is everything the bundler needs for one build.
type Config struct {
	ConfigFile string     `json:"configFile"`
	Root       string     `json:"root"`
	OutDir     string     `json:"outDir"`
	Watch      *WatchSpec `json:"watch,omitempty"`
}

// WatchSpec restricts watch mode to the listed files.
type WatchSpec struct {
	Include []string `json:"include"`
}

// Bundler runs a build. In watch mode Build blocks until ctx is cancelled.
type Bundler interface {
	Build(ctx context.Context, cfg Config) error
}

// Func adapts an ordinary function to the Bundler interface.
type Func func(ctx context.Context, cfg Config) error

// Build calls f(ctx, cfg).
func (f Func) Build(ctx context.Context, cfg Config) error { return f(ctx, cfg) }

// BuildError reports a failed bundler run.
type BuildError struct {
	Message  string
	ExitCode int // 0 when the bundler never ran
	Err      error
}

func (e *BuildError) Error() string {
	if e.Message == "" && e.Err != nil {
		return fmt.Sprintf("build failed: %v", e.Err)
	}
	return "build failed: " + e.Message
}

func (e *BuildError) Unwrap() error { return e.Err }
