package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sviny-labs/sviny/internal/bundler"
	"github.com/sviny-labs/sviny/internal/logging"
	"github.com/sviny-labs/sviny/internal/workspace"
)

// Runner performs builds against one tool root.
type Runner struct {
	Layout     workspace.Layout
	ConfigFile string
	Bundler    bundler.Bundler
	Stdout     io.Writer
	Logger     *log.Logger
}

// Run validates opts, then links the component and invokes the bundler
// inside a workspace session. Nothing is mutated when validation fails.
// Bundler failures come back as *bundler.BuildError after the workspace
// has been released.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := bundler.Config{
		ConfigFile: r.ConfigFile,
		Root:       r.Layout.Root,
		OutDir:     opts.OutDir,
	}
	if opts.Watch {
		// Watch the user's file itself, not the link in the tool root.
		real, err := filepath.EvalSymlinks(opts.Component)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", opts.Component, err)
		}
		cfg.Watch = &bundler.WatchSpec{Include: []string{real}}
	}

	return workspace.Run(ctx, r.Layout, opts.Component, logger, func(ctx context.Context, _ *workspace.Session) error {
		fmt.Fprintf(stdout, "Building %s to %s\n", opts.Component, opts.OutDir)
		logger.Debug("invoking bundler", "config", cfg.ConfigFile, "out", cfg.OutDir, "watch", opts.Watch)
		err := r.Bundler.Build(ctx, cfg)
		if err == nil {
			return nil
		}
		var be *bundler.BuildError
		if errors.As(err, &be) {
			return err
		}
		return &bundler.BuildError{Message: err.Error(), Err: err}
	})
}
