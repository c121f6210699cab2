package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/platform"
)

// StaleLinkError reports state left behind by a previous run that did not
// finish its teardown. It is never repaired implicitly.
type StaleLinkError struct {
	Path   string
	Target string // link target when Path is a symlink
}

func (e *StaleLinkError) Error() string {
	what := e.Path
	if e.Target != "" {
		what = fmt.Sprintf("%s -> %s", e.Path, e.Target)
	}
	return fmt.Sprintf("%s already exists, left by an incomplete previous run; run '%s clean' to recover",
		what, branding.CLIName())
}

// Link creates a symlink at linkPath pointing to source. An occupied
// linkPath is a *StaleLinkError.
func Link(source, linkPath string) error {
	if err := checkVacant(linkPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(linkPath), err)
	}
	if err := platform.CreateSymlink(source, linkPath); err != nil {
		return fmt.Errorf("linking %s to %s: %w", linkPath, source, err)
	}
	return nil
}

// Unlink removes the link created by Link.
func Unlink(linkPath string) error {
	if err := platform.RemoveSymlink(linkPath); err != nil {
		return fmt.Errorf("removing link %s: %w", linkPath, err)
	}
	return nil
}

func checkVacant(path string) error {
	exists, err := platform.Exists(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	target, _ := platform.ReadSymlinkTarget(path)
	return &StaleLinkError{Path: path, Target: target}
}
