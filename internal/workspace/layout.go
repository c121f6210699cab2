package workspace

import (
	"path/filepath"

	"github.com/sviny-labs/sviny/internal/branding"
	"github.com/sviny-labs/sviny/internal/manifest"
)

// Fixed locations inside the tool root.
const (
	EntryRelPath = "src/App" // plus the component extension
	JournalName  = ".sviny-session.json"
)

// Layout holds the resolved paths a session touches.
type Layout struct {
	Root                string
	ManifestPath        string // tool manifest, mutated and restored
	EntryPath           string // link location for the component
	JournalPath         string
	ProjectManifestPath string // user manifest, never written
}

// NewLayout resolves the session paths for a tool root and a user project.
func NewLayout(root, projectDir string) Layout {
	return Layout{
		Root:                root,
		ManifestPath:        filepath.Join(root, manifest.FileName),
		EntryPath:           filepath.Join(root, filepath.FromSlash(EntryRelPath)+branding.ComponentExt()),
		JournalPath:         filepath.Join(root, JournalName),
		ProjectManifestPath: filepath.Join(projectDir, manifest.FileName),
	}
}
