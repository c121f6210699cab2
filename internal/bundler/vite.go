package bundler

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sviny-labs/sviny/internal/branding"
)

//go:embed driver.mjs
var driverScript string

// DefaultWaitDelay is how long an interrupted node process gets to close
// its watcher before it is killed.
const DefaultWaitDelay = 5 * time.Second

// Vite runs builds through node and the vite package installed in the tool root.
type Vite struct {
	// Node is the node binary name or path; defaults to "node".
	Node string
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// WaitDelay overrides DefaultWaitDelay.
	WaitDelay time.Duration
}

// Build invokes vite's build() with cfg. The child receives SIGINT when ctx
// is cancelled; a watch session ended that way is not an error.
func (v *Vite) Build(ctx context.Context, cfg Config) error {
	node := v.Node
	if node == "" {
		node = "node"
	}
	nodeBin, err := exec.LookPath(node)
	if err != nil {
		return &BuildError{Message: "vite requires Node.js", Err: err}
	}

	if !ViteInstalled(cfg.Root) {
		return &BuildError{
			Message: fmt.Sprintf("vite is not installed in %s; run 'npm install' there", cfg.Root),
		}
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing build config: %w", err)
	}

	cmd := exec.CommandContext(ctx, nodeBin, "--input-type=module", "-")
	cmd.Dir = cfg.Root
	cmd.Env = setEnv(os.Environ(), branding.EnvVar("BUILD_CONFIG"), string(cfgJSON))
	cmd.Stdin = strings.NewReader(driverScript)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = v.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	stdout := v.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := v.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()
	if ctx.Err() != nil {
		if cfg.Watch != nil {
			return nil
		}
		return &BuildError{Message: "build interrupted", Err: ctx.Err()}
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &BuildError{
			Message:  lastLine(stderrBuf.String(), exitErr.Error()),
			ExitCode: exitErr.ExitCode(),
			Err:      err,
		}
	}
	return &BuildError{Message: "running node", Err: err}
}

// ViteInstalled reports whether root has vite under node_modules.
func ViteInstalled(root string) bool {
	_, err := os.Stat(filepath.Join(root, "node_modules", "vite", "package.json"))
	return err == nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// lastLine returns the last non-empty line of s, or fallback.
func lastLine(s, fallback string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return fallback
}
