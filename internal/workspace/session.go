package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sviny-labs/sviny/internal/logging"
	"github.com/sviny-labs/sviny/internal/manifest"
)

// Session is an open, temporarily mutated tool root. Obtain one with Open
// and always call Release.
type Session struct {
	layout    Layout
	component string
	logger    *log.Logger

	original *manifest.Manifest
	report   *manifest.MergeReport

	journaled       bool
	manifestWritten bool
	linked          bool
	released        bool
}

// Open acquires the workspace for component. All preconditions (no stale
// link or journal, both manifests parse) are checked before anything is
// written. If a later step fails, the steps already taken are undone
// before Open returns.
func Open(layout Layout, component string, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{layout: layout, component: component, logger: logger}

	if err := checkVacant(layout.EntryPath); err != nil {
		return nil, err
	}
	if _, err := os.Stat(layout.JournalPath); err == nil {
		return nil, &StaleLinkError{Path: layout.JournalPath}
	}

	tool, err := manifest.Load(layout.ManifestPath)
	if err != nil {
		return nil, err
	}
	user, err := manifest.Load(layout.ProjectManifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no project manifest, building with tool dependencies only", "path", layout.ProjectManifestPath)
		user = nil
	} else if err != nil {
		return nil, err
	}

	merged, report := manifest.Merge(tool, user)
	s.original = tool
	s.report = report
	for _, o := range report.Incompatible() {
		logger.Warn("dependency override outside tool range",
			"package", o.Name, "section", o.Section, "tool", o.Tool, "project", o.User)
	}

	if err := s.acquire(merged); err != nil {
		if rerr := s.Release(); rerr != nil {
			logger.Warn("rollback incomplete", "err", rerr)
		}
		return nil, err
	}
	return s, nil
}

func (s *Session) acquire(merged *manifest.Manifest) error {
	j := &Journal{
		ManifestPath: s.layout.ManifestPath,
		Manifest:     s.original.Raw(),
		Mode:         s.original.Mode(),
		LinkPath:     s.layout.EntryPath,
		Component:    s.component,
		PID:          os.Getpid(),
		StartedAt:    time.Now().UTC(),
	}
	if err := writeJournal(s.layout.JournalPath, j); err != nil {
		return err
	}
	s.journaled = true
	s.logger.Debug("journal written", "path", s.layout.JournalPath)

	s.manifestWritten = true
	if err := merged.Write(s.layout.ManifestPath); err != nil {
		return fmt.Errorf("persisting merged manifest: %w", err)
	}
	s.logger.Debug("merged manifest written", "path", s.layout.ManifestPath,
		"added", len(s.report.Added), "overrides", len(s.report.Overrides))

	if err := Link(s.component, s.layout.EntryPath); err != nil {
		return err
	}
	s.linked = true
	s.logger.Debug("component linked", "link", s.layout.EntryPath, "target", s.component)
	return nil
}

// Report returns what the user manifest changed.
func (s *Session) Report() *manifest.MergeReport { return s.report }

// Layout returns the paths the session operates on.
func (s *Session) Layout() Layout { return s.layout }

// Release removes the link and then restores the original manifest. Every
// step is attempted regardless of earlier failures; the journal is kept
// when any step fails so Recover can retry. Release is idempotent.
func (s *Session) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var errs []error
	if s.linked {
		if err := Unlink(s.layout.EntryPath); err != nil {
			s.logger.Warn("could not remove link", "path", s.layout.EntryPath, "err", err)
			errs = append(errs, err)
		} else {
			s.logger.Debug("link removed", "path", s.layout.EntryPath)
		}
	}

	if s.manifestWritten {
		if err := s.original.Restore(s.layout.ManifestPath); err != nil {
			s.logger.Warn("could not restore manifest", "path", s.layout.ManifestPath, "err", err)
			errs = append(errs, err)
		} else {
			s.logger.Debug("manifest restored", "path", s.layout.ManifestPath)
		}
	}

	if s.journaled && len(errs) == 0 {
		if err := removeJournal(s.layout.JournalPath); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Run opens a session, calls fn, and releases the session on every exit
// path. A release failure is returned only when fn succeeded; otherwise
// fn's error wins and the release failure is logged.
func Run(ctx context.Context, layout Layout, component string, logger *log.Logger, fn func(ctx context.Context, s *Session) error) (err error) {
	s, err := Open(layout, component, logger)
	if err != nil {
		return err
	}
	defer func() {
		rerr := s.Release()
		if rerr == nil {
			return
		}
		if err == nil {
			err = fmt.Errorf("cleaning up workspace: %w", rerr)
			return
		}
		s.logger.Warn("cleanup incomplete after failed build", "err", rerr)
	}()

	return fn(ctx, s)
}
