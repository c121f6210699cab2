//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sviny-labs/sviny/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds ~/.sviny/config.yaml
	ToolRoot   string // SVINY_ROOT, the installed Vite project
	ProjectDir string // a user project with components
}

// setupTestEnv scaffolds a tool root and installs its node dependencies.
// The test is skipped when node or npm is unavailable, or when the install
// fails (usually no network).
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	for _, bin := range []string{"node", "npm"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not installed", bin)
		}
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ToolRoot:   filepath.Join(t.TempDir(), "share", "sviny"),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("SVINY_ROOT", env.ToolRoot)

	if _, err := scaffold.Generate(scaffold.NewData("0.0.0"), env.ToolRoot, false); err != nil {
		t.Fatalf("scaffolding tool root: %v", err)
	}

	install := exec.Command("npm", "install", "--no-audit", "--no-fund")
	install.Dir = env.ToolRoot
	if out, err := install.CombinedOutput(); err != nil {
		t.Skipf("npm install failed: %v\n%s", err, out)
	}

	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the contents of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertNotExists fails the test if anything, including a dangling link,
// exists at path.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s NOT to exist", path)
	}
}

// assertDirContains fails unless some file under dir contains substr.
func assertDirContains(t *testing.T, dir, substr string) {
	t.Helper()
	found := false
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found {
			return err
		}
		data, err := os.ReadFile(p)
		if err == nil && strings.Contains(string(data), substr) {
			found = true
		}
		return nil
	})
	if !found {
		t.Errorf("no file under %s contains %q", dir, substr)
	}
}
