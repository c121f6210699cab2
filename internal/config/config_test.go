package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	setupHome(t)
	Load()

	tests := map[string]string{
		KeyNode:       "node",
		KeyViteConfig: "vite.config.ts",
		KeyDefaultApp: "App.svelte",
		KeyDefaultOut: "build",
		KeyLogLevel:   "info",
	}
	for key, want := range tests {
		if got := Get(key); got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	setupHome(t)
	t.Setenv("SVINY_DEFAULT_OUT", "dist")
	Load()

	if got := Get(KeyDefaultOut); got != "dist" {
		t.Errorf("Get(default_out) = %q, want %q", got, "dist")
	}
}

func TestSetPersists(t *testing.T) {
	home := setupHome(t)
	Load()

	if err := Set(KeyNode, "/opt/node/bin/node"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".sviny", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "/opt/node/bin/node") {
		t.Errorf("config file missing value:\n%s", data)
	}
}

func TestSetUnknownKey(t *testing.T) {
	setupHome(t)
	Load()

	if err := Set("mirror_url", "x"); err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestToolRootFromEnv(t *testing.T) {
	setupHome(t)
	root := t.TempDir()
	t.Setenv("SVINY_ROOT", root)
	Load()

	got, err := ToolRoot()
	if err != nil {
		t.Fatalf("ToolRoot: %v", err)
	}
	if got != root {
		t.Errorf("ToolRoot() = %q, want %q", got, root)
	}
}
