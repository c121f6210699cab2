package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"
)

// Journal is the on-disk record of an open session.
type Journal struct {
	ManifestPath string      `json:"manifestPath"`
	Manifest     []byte      `json:"manifest"`
	Mode         os.FileMode `json:"mode"`
	LinkPath     string      `json:"linkPath"`
	Component    string      `json:"component"`
	PID          int         `json:"pid"`
	StartedAt    time.Time   `json:"startedAt"`
}

// Alive reports whether the process that wrote the journal still runs.
func (j *Journal) Alive() bool {
	if j.PID <= 0 || j.PID == os.Getpid() {
		return false
	}
	p, err := os.FindProcess(j.PID)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}

func writeJournal(path string, j *Journal) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session journal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing session journal: %w", err)
	}
	return nil
}

// ReadJournal loads the journal at path. Returns nil, nil if none exists.
func ReadJournal(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session journal: %w", err)
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing session journal %s: %w", path, err)
	}
	return &j, nil
}

func removeJournal(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session journal: %w", err)
	}
	return nil
}
