package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ParseError reports a manifest that is not valid JSON or whose dependency
// sections are not string→string objects.
type ParseError struct {
	Path   string
	Issues []ValidationIssue
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parsing manifest %s", e.Path)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, issue := range e.Issues {
		b.WriteString("\n  ")
		if issue.Path != "" {
			b.WriteString(issue.Path + ": ")
		}
		b.WriteString(issue.Message)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the manifest at path, capturing its bytes and mode
// so it can be restored exactly.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	m.mode = info.Mode().Perm()
	return m, nil
}

// Parse decodes manifest bytes. path is used only for error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("manifest is null")}
	}

	result, err := Validate(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if !result.Valid {
		return nil, &ParseError{Path: path, Issues: result.Issues}
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	return &Manifest{Fields: fields, raw: raw, mode: 0644}, nil
}
