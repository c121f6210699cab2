package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sviny-labs/sviny/internal/branding"
)

// Options is the immutable description of one build request.
type Options struct {
	Component string // absolute path to the user's component
	OutDir    string // absolute output directory
	Watch     bool
}

// MissingFileError reports a component that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s does not exist.", e.Path)
}

// HasComponentExt reports whether app names a buildable component.
func HasComponentExt(app string) bool {
	return strings.HasSuffix(app, branding.ComponentExt())
}

// NewOptions resolves app and out against projectDir. Absolute paths are
// kept as given.
func NewOptions(projectDir, app, out string, watch bool) Options {
	return Options{
		Component: resolve(projectDir, app),
		OutDir:    resolve(projectDir, out),
		Watch:     watch,
	}
}

// Validate checks the component extension and that the component exists.
func (o Options) Validate() error {
	if !HasComponentExt(o.Component) {
		return fmt.Errorf("%s is not a %s component", o.Component, branding.ComponentExt())
	}
	info, err := os.Stat(o.Component)
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingFileError{Path: o.Component}
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", o.Component, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", o.Component)
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
