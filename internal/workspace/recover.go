package workspace

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sviny-labs/sviny/internal/logging"
	"github.com/sviny-labs/sviny/internal/manifest"
	"github.com/sviny-labs/sviny/internal/platform"
)

// Status describes leftover session state without changing anything.
type Status struct {
	LinkPresent   bool
	LinkIsSymlink bool
	LinkTarget    string
	Journal       *Journal
}

// Clean reports whether no session state is left in the tool root.
func (s *Status) Clean() bool {
	return !s.LinkPresent && s.Journal == nil
}

// Inspect reports leftover session state in layout.
func Inspect(layout Layout) (*Status, error) {
	st := &Status{}

	present, err := platform.Exists(layout.EntryPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", layout.EntryPath, err)
	}
	st.LinkPresent = present
	if present {
		st.LinkIsSymlink, err = platform.IsSymlink(layout.EntryPath)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", layout.EntryPath, err)
		}
		st.LinkTarget, _ = platform.ReadSymlinkTarget(layout.EntryPath)
	}

	st.Journal, err = ReadJournal(layout.JournalPath)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Recovery lists what Recover changed.
type Recovery struct {
	RemovedLink      string
	RestoredManifest string
	RemovedJournal   bool
}

// Nothing reports whether Recover found nothing to do.
func (r *Recovery) Nothing() bool {
	return r.RemovedLink == "" && r.RestoredManifest == "" && !r.RemovedJournal
}

// Recover undoes a session that was never released. It refuses to touch a
// regular file at the entry path, and it refuses a journal whose process
// is still running unless force is set.
func Recover(layout Layout, force bool, logger *log.Logger) (*Recovery, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st, err := Inspect(layout)
	if err != nil {
		return nil, err
	}

	rec := &Recovery{}
	j := st.Journal
	if j != nil && !force && j.Alive() {
		return nil, fmt.Errorf("session started by pid %d at %s is still running; stop it or pass --force",
			j.PID, j.StartedAt.Format("2006-01-02 15:04:05"))
	}

	linkPath := layout.EntryPath
	if j != nil && j.LinkPath != "" {
		linkPath = j.LinkPath
	}
	isLink, err := platform.IsSymlink(linkPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", linkPath, err)
	}
	present, _ := platform.Exists(linkPath)
	switch {
	case isLink:
		if err := Unlink(linkPath); err != nil {
			return rec, err
		}
		rec.RemovedLink = linkPath
		logger.Info("removed stale link", "path", linkPath)
	case present:
		return rec, fmt.Errorf("%s is a regular file, not a link; remove it by hand if it is not needed", linkPath)
	}

	if j == nil {
		return rec, nil
	}

	if err := manifest.RestoreBytes(j.ManifestPath, j.Manifest, j.Mode); err != nil {
		return rec, err
	}
	rec.RestoredManifest = j.ManifestPath
	logger.Info("restored manifest from journal", "path", j.ManifestPath)

	if err := removeJournal(layout.JournalPath); err != nil {
		return rec, err
	}
	rec.RemovedJournal = true
	return rec, nil
}
