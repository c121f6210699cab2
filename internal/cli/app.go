package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/bundler"
	"github.com/sviny-labs/sviny/internal/config"
	"github.com/sviny-labs/sviny/internal/logging"
	"github.com/sviny-labs/sviny/internal/workspace"
)

// UnknownCommandError reports a first argument that is neither a component
// nor a subcommand.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q for %s; run '%s help' for usage",
		e.Command, branding.CLIName(), branding.CLIName())
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var be *bundler.BuildError
	if errors.As(err, &be) && be.ExitCode > 0 {
		return be.ExitCode
	}
	return 1
}

// app carries build info and the collaborators commands share.
type app struct {
	version string
	commit  string
	date    string

	stdout io.Writer
	stderr io.Writer
	logger *log.Logger

	// bundler replaces the Vite bundler; set in tests.
	bundler bundler.Bundler
}

func (a *app) loadConfig() {
	config.Load()
	a.logger = logging.New(a.stderr, config.Get(config.KeyLogLevel))
}

// layout resolves the tool root paths for a project in projectDir. It also
// returns the absolute path of the Vite config file.
func (a *app) layout(projectDir string) (workspace.Layout, string, error) {
	root, err := config.ToolRoot()
	if err != nil {
		return workspace.Layout{}, "", fmt.Errorf("resolving tool root: %w", err)
	}

	configFile := config.Get(config.KeyViteConfig)
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(root, configFile)
	}
	return workspace.NewLayout(root, projectDir), configFile, nil
}

func (a *app) viteBundler() bundler.Bundler {
	if a.bundler != nil {
		return a.bundler
	}
	return &bundler.Vite{
		Node:   config.Get(config.KeyNode),
		Stdout: a.stdout,
		Stderr: a.stderr,
	}
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	a := &app{
		version: version,
		commit:  commit,
		date:    date,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	return a.execute(context.Background(), os.Args[1:])
}

func (a *app) execute(ctx context.Context, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd.ExecuteContext(ctx)
}
