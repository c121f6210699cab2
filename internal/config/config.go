package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/sviny-labs/sviny/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyRoot       = "root"
	KeyNode       = "node"
	KeyViteConfig = "vite_config"
	KeyDefaultApp = "default_app"
	KeyDefaultOut = "default_out"
	KeyLogLevel   = "log_level"
)

// Keys lists every setting understood by the CLI.
var Keys = []string{KeyRoot, KeyNode, KeyViteConfig, KeyDefaultApp, KeyDefaultOut, KeyLogLevel}

// Dir returns the path to the sviny config directory (~/.sviny/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.sviny/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyNode, "node")
	viper.SetDefault(KeyViteConfig, "vite.config.ts")
	viper.SetDefault(KeyDefaultApp, "App"+branding.ComponentExt())
	viper.SetDefault(KeyDefaultOut, "build")
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !isKnown(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ToolRoot returns the directory holding the pre-configured build project.
// The root setting (SVINY_ROOT or config file) wins; otherwise the project
// is expected at <binary-dir>/../share/sviny, the distribution layout.
func ToolRoot() (string, error) {
	if root := viper.GetString(KeyRoot); root != "" {
		return filepath.Abs(root)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "..", "share", branding.CLIName()), nil
}

func isKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
