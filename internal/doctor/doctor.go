// Package doctor diagnoses the environment a build depends on: node, the
// tool root and any session state a crashed run left behind.
package doctor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/bundler"
	"github.com/sviny-labs/sviny/internal/manifest"
	"github.com/sviny-labs/sviny/internal/workspace"
)

// MinNodeVersion is the oldest node the Vite pipeline supports.
const MinNodeVersion = ">= 18.0.0"

// Config names what to check.
type Config struct {
	Node       string
	Layout     workspace.Layout
	ConfigFile string
}

// Check runs every diagnostic, writing one line per finding to w, and
// returns the number of problems found.
func Check(w io.Writer, cfg Config) int {
	problems := 0
	problems += CheckNode(w, cfg.Node)
	problems += CheckRoot(w, cfg.Layout, cfg.ConfigFile)
	problems += CheckSession(w, cfg.Layout)
	return problems
}

// CheckNode verifies node is on PATH and recent enough.
func CheckNode(w io.Writer, node string) int {
	fmt.Fprintln(w, "Runtime check:")
	if node == "" {
		node = "node"
	}

	bin, err := exec.LookPath(node)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found on PATH\n", node)
		return 1
	}

	out, err := exec.Command(bin, "--version").Output()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s --version: %v\n", bin, err)
		return 1
	}

	v, err := ParseNodeVersion(string(out))
	if err != nil {
		fmt.Fprintf(w, "  [WARN] could not parse node version %q\n", strings.TrimSpace(string(out)))
		return 1
	}

	c, _ := semver.NewConstraint(MinNodeVersion)
	if !c.Check(v) {
		fmt.Fprintf(w, "  [WARN] node %s is too old (need %s)\n", v, MinNodeVersion)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] node %s (%s)\n", v, bin)
	return 0
}

// ParseNodeVersion parses `node --version` output such as "v20.11.1\n".
func ParseNodeVersion(out string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(out), "v"))
}

// CheckRoot verifies the tool root holds a usable build project.
func CheckRoot(w io.Writer, layout workspace.Layout, configFile string) int {
	fmt.Fprintln(w, "Tool root check:")

	if _, err := os.Stat(layout.Root); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", layout.Root)
		fmt.Fprintf(w, "         Run '%s init' to create it\n", branding.CLIName())
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", layout.Root)

	problems := 0
	if _, err := manifest.Load(layout.ManifestPath); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		problems++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", layout.ManifestPath)
	}

	if _, err := os.Stat(configFile); err != nil {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", configFile)
		problems++
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", configFile)
	}

	if !bundler.ViteInstalled(layout.Root) {
		fmt.Fprintf(w, "  [MISS] vite is not installed; run 'npm install' in %s\n", layout.Root)
		problems++
	} else {
		fmt.Fprintln(w, "  [ OK ] vite installed")
	}

	return problems
}

// CheckSession reports leftover link or journal state.
func CheckSession(w io.Writer, layout workspace.Layout) int {
	fmt.Fprintln(w, "Session check:")

	st, err := workspace.Inspect(layout)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	if st.Clean() {
		fmt.Fprintln(w, "  [ OK ] no leftover session state")
		return 0
	}

	problems := 0
	if st.LinkPresent {
		switch {
		case st.LinkIsSymlink:
			fmt.Fprintf(w, "  [WARN] %s -> %s left by a previous run\n", layout.EntryPath, st.LinkTarget)
		default:
			fmt.Fprintf(w, "  [WARN] %s is a regular file; builds cannot link over it\n", layout.EntryPath)
		}
		problems++
	}
	if j := st.Journal; j != nil {
		state := "not running"
		if j.Alive() {
			state = "still running"
		}
		fmt.Fprintf(w, "  [WARN] session for %s started %s by pid %d (%s)\n",
			j.Component, j.StartedAt.Format("2006-01-02 15:04:05"), j.PID, state)
		problems++
	}
	fmt.Fprintf(w, "         Run '%s clean' to recover\n", branding.CLIName())
	return problems
}
