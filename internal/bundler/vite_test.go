package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const fakeVite = `import { mkdirSync, writeFileSync } from 'node:fs'
import { join } from 'node:path'

export async function build(options) {
  if (options.configFile.endsWith('fail.config.js')) {
    throw new Error('Could not resolve entry module "src/App.svelte".')
  }
  mkdirSync(options.build.outDir, { recursive: true })
  writeFileSync(join(options.build.outDir, 'options.json'), JSON.stringify(options))
  return { close: async () => {} }
}
`

func requireNode(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("Node.js not available, skipping")
	}
}

// setupRoot creates a tool root with a stand-in vite package that records
// the options it was called with.
func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	viteDir := filepath.Join(root, "node_modules", "vite")
	if err := os.MkdirAll(viteDir, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(root, "package.json"):    `{"name":"pipeline","type":"module"}`,
		filepath.Join(viteDir, "package.json"): `{"name":"vite","type":"module","main":"index.js"}`,
		filepath.Join(viteDir, "index.js"):     fakeVite,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readOptions(t *testing.T, outDir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, "options.json"))
	if err != nil {
		t.Fatalf("bundler did not record options: %v", err)
	}
	var opts map[string]any
	if err := json.Unmarshal(data, &opts); err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestVite_Build(t *testing.T) {
	requireNode(t)
	root := setupRoot(t)
	out := filepath.Join(t.TempDir(), "build")

	var stdout, stderr bytes.Buffer
	v := &Vite{Stdout: &stdout, Stderr: &stderr}

	err := v.Build(context.Background(), Config{
		ConfigFile: filepath.Join(root, "vite.config.ts"),
		Root:       root,
		OutDir:     out,
	})
	if err != nil {
		t.Fatalf("Build: %v (stderr: %s)", err, stderr.String())
	}

	opts := readOptions(t, out)
	if opts["configFile"] != filepath.Join(root, "vite.config.ts") {
		t.Errorf("configFile = %v", opts["configFile"])
	}
	build := opts["build"].(map[string]any)
	if build["outDir"] != out {
		t.Errorf("build.outDir = %v, want %s", build["outDir"], out)
	}
	if _, ok := build["watch"]; ok {
		t.Error("watch set for a one-shot build")
	}
}

func TestVite_BuildWatchInclude(t *testing.T) {
	requireNode(t)
	root := setupRoot(t)
	out := filepath.Join(t.TempDir(), "dist")
	component := "/home/dev/widgets/custom.svelte"

	v := &Vite{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := v.Build(context.Background(), Config{
		ConfigFile: filepath.Join(root, "vite.config.ts"),
		Root:       root,
		OutDir:     out,
		Watch:      &WatchSpec{Include: []string{component}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	build := readOptions(t, out)["build"].(map[string]any)
	watch, ok := build["watch"].(map[string]any)
	if !ok {
		t.Fatalf("build.watch missing: %v", build)
	}
	include := watch["include"].([]any)
	if len(include) != 1 || include[0] != component {
		t.Errorf("watch.include = %v, want [%s]", include, component)
	}
}

func TestVite_BuildFailure(t *testing.T) {
	requireNode(t)
	root := setupRoot(t)

	var stderr bytes.Buffer
	v := &Vite{Stdout: &bytes.Buffer{}, Stderr: &stderr}

	err := v.Build(context.Background(), Config{
		ConfigFile: filepath.Join(root, "fail.config.js"),
		Root:       root,
		OutDir:     filepath.Join(t.TempDir(), "build"),
	})

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *BuildError", err)
	}
	if be.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", be.ExitCode)
	}
	if !strings.Contains(be.Message, "Could not resolve entry module") {
		t.Errorf("Message = %q", be.Message)
	}
	if !strings.Contains(stderr.String(), "Could not resolve entry module") {
		t.Error("bundler stderr not streamed to writer")
	}
}

func TestVite_NotInstalled(t *testing.T) {
	requireNode(t)
	root := t.TempDir()

	v := &Vite{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := v.Build(context.Background(), Config{Root: root, OutDir: filepath.Join(root, "build")})

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *BuildError", err)
	}
	if !strings.Contains(be.Message, "npm install") {
		t.Errorf("Message = %q, want npm install hint", be.Message)
	}
}

func TestVite_MissingNode(t *testing.T) {
	v := &Vite{Node: "definitely-not-node-binary"}
	err := v.Build(context.Background(), Config{Root: t.TempDir()})

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *BuildError", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound in chain, got %v", err)
	}
}

func TestFunc(t *testing.T) {
	var got Config
	var b Bundler = Func(func(_ context.Context, cfg Config) error {
		got = cfg
		return nil
	})
	if err := b.Build(context.Background(), Config{OutDir: "build"}); err != nil {
		t.Fatal(err)
	}
	if got.OutDir != "build" {
		t.Errorf("OutDir = %q", got.OutDir)
	}
}

func TestBuildError_Message(t *testing.T) {
	tests := []struct {
		err  *BuildError
		want string
	}{
		{&BuildError{Message: "boom"}, "build failed: boom"},
		{&BuildError{Err: context.Canceled}, "build failed: context canceled"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("one\ntwo\n\n", "x"); got != "two" {
		t.Errorf("lastLine = %q, want two", got)
	}
	if got := lastLine("  \n", "fallback"); got != "fallback" {
		t.Errorf("lastLine = %q, want fallback", got)
	}
}
